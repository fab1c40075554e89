package consult

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/icucare/consults/pkg/pagination"
)

// SectionView is the renderer payload for one wizard state: the section's
// editable fields, any errors to annotate them with, and the record id
// (absent only for a blank section A).
type SectionView struct {
	Section  Section          `json:"section"`
	RecordID *uuid.UUID       `json:"record_id,omitempty"`
	Fields   interface{}      `json:"fields"`
	Errors   *ValidationError `json:"errors,omitempty"`
}

// SaveResult is returned on a successful section save. The saved record is
// included so derived corrections (age from date of birth) are visible.
type SaveResult struct {
	RecordID uuid.UUID     `json:"record_id"`
	Next     Section       `json:"next"`
	Record   *Consultation `json:"record"`
}

// ListingItem is one row of the public listing of submitted consults.
type ListingItem struct {
	ID              uuid.UUID `json:"id"`
	Display         string    `json:"display"`
	Ward            Ward      `json:"ward"`
	RequestDatetime time.Time `json:"request_datetime"`
	Decision        Decision  `json:"decision,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// ReviewView is the single-record review projection: the full stored record
// plus the same derived display line the listing shows.
type ReviewView struct {
	Display string        `json:"display"`
	Record  *Consultation `json:"record"`
}

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusFound, "/consults/sections/a")
	})

	g := e.Group("/consults")
	g.GET("", h.ListSubmitted)
	g.GET("/sections/a", h.GetSectionA)
	g.POST("/sections/a", h.PostSectionA)
	g.GET("/:id/sections/:section", h.GetSection)
	g.POST("/:id/sections/:section", h.PostSection)
	g.GET("/:id/summary", h.GetSummary)
	g.POST("/:id/summary", h.Submit)
	g.GET("/:id/review", h.Review)
}

// GetSectionA serves the blank entry point of the wizard. No record exists
// yet, so there is no id and nothing to prefill.
func (h *Handler) GetSectionA(c echo.Context) error {
	return c.JSON(http.StatusOK, SectionView{Section: SectionA, Fields: SectionAInput{}})
}

func (h *Handler) PostSectionA(c echo.Context) error {
	var in SectionAInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	cons, err := h.svc.SaveSectionA(c.Request().Context(), in)
	if err != nil {
		return h.sectionError(c, SectionA, nil, in, err)
	}
	return c.JSON(http.StatusCreated, SaveResult{RecordID: cons.ID, Next: SectionA.Next(), Record: cons})
}

func (h *Handler) GetSection(c echo.Context) error {
	id, sec, err := h.sectionParams(c)
	if err != nil {
		return err
	}
	fields, err := h.svc.Prefill(c.Request().Context(), id, sec)
	if err != nil {
		return h.sectionError(c, sec, &id, nil, err)
	}
	return c.JSON(http.StatusOK, SectionView{Section: sec, RecordID: &id, Fields: fields})
}

func (h *Handler) PostSection(c echo.Context) error {
	id, sec, err := h.sectionParams(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	var (
		fields interface{}
		cons   *Consultation
	)
	switch sec {
	case SectionB:
		var in SectionBInput
		if err := c.Bind(&in); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		fields = in
		cons, err = h.svc.SaveSectionB(ctx, id, in)
	case SectionC:
		var in SectionCInput
		if err := c.Bind(&in); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		fields = in
		cons, err = h.svc.SaveSectionC(ctx, id, in)
	case SectionD:
		var in SectionDInput
		if err := c.Bind(&in); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		fields = in
		cons, err = h.svc.SaveSectionD(ctx, id, in)
	case SectionE:
		var in SectionEInput
		if err := c.Bind(&in); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		fields = in
		cons, err = h.svc.SaveSectionE(ctx, id, in)
	case SectionF:
		var in SectionFInput
		if err := c.Bind(&in); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		fields = in
		cons, err = h.svc.SaveSectionF(ctx, id, in)
	case SectionG:
		var in SectionGInput
		if err := c.Bind(&in); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		fields = in
		cons, err = h.svc.SaveSectionG(ctx, id, in)
	}
	if err != nil {
		return h.sectionError(c, sec, &id, fields, err)
	}
	return c.JSON(http.StatusOK, SaveResult{RecordID: cons.ID, Next: sec.Next(), Record: cons})
}

func (h *Handler) GetSummary(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	cons, err := h.svc.Summary(c.Request().Context(), id)
	if err != nil {
		return h.lookupError(err)
	}
	return c.JSON(http.StatusOK, cons)
}

// Submit is the submission gate: POST on the summary marks the record
// final. Re-submitting is a no-op success.
func (h *Handler) Submit(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	cons, err := h.svc.Submit(c.Request().Context(), id)
	if err != nil {
		return h.lookupError(err)
	}
	return c.JSON(http.StatusOK, cons)
}

func (h *Handler) Review(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	cons, err := h.svc.Summary(c.Request().Context(), id)
	if err != nil {
		return h.lookupError(err)
	}
	return c.JSON(http.StatusOK, ReviewView{Display: cons.DisplayLine(time.Now()), Record: cons})
}

func (h *Handler) ListSubmitted(c echo.Context) error {
	pg := pagination.FromContext(c)
	consults, total, err := h.svc.ListSubmitted(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	today := time.Now()
	items := make([]ListingItem, len(consults))
	for i, cons := range consults {
		items[i] = ListingItem{
			ID:              cons.ID,
			Display:         cons.DisplayLine(today),
			Ward:            cons.Ward,
			RequestDatetime: cons.RequestDatetime,
			Decision:        cons.Decision,
			CreatedAt:       cons.CreatedAt,
		}
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) sectionParams(c echo.Context) (uuid.UUID, Section, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, "", echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	sec, ok := ParseSection(c.Param("section"))
	if !ok {
		return uuid.Nil, "", echo.NewHTTPError(http.StatusNotFound, "unknown section")
	}
	return id, sec, nil
}

// sectionError maps a save failure: validation errors re-render the section
// with the submitted fields echoed back; lookup and store failures
// propagate to the boundary.
func (h *Handler) sectionError(c echo.Context, sec Section, recordID *uuid.UUID, fields interface{}, err error) error {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return c.JSON(http.StatusUnprocessableEntity, SectionView{
			Section:  sec,
			RecordID: recordID,
			Fields:   fields,
			Errors:   verr,
		})
	}
	return h.lookupError(err)
}

func (h *Handler) lookupError(err error) error {
	if errors.Is(err, ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "consultation not found")
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
