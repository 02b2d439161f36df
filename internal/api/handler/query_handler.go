package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/clientlens/clientlens-api/internal/core/ports"
)

// QueryHandler serves the natural-language query endpoint and the model probe.
type QueryHandler struct {
	svc ports.QueryService
}

func NewQueryHandler(svc ports.QueryService) *QueryHandler {
	return &QueryHandler{svc: svc}
}

type queryRequest struct {
	Query  string     `json:"query"  validate:"required,max=2000"`
	UserID flexibleID `json:"userId" validate:"required,gt=0" swaggertype:"integer"`
}

// flexibleID decodes a user id sent either as a JSON number or as a numeric
// string, which is how a <select> value arrives. Anything else decodes as 0
// and is rejected by validation.
type flexibleID int64

func (id *flexibleID) UnmarshalJSON(b []byte) error {
	*id = 0
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil || n == "" {
		return nil
	}
	v, err := strconv.ParseInt(n.String(), 10, 64)
	if err != nil {
		return nil
	}
	*id = flexibleID(v)
	return nil
}

type modelStatusResponse struct {
	Success  bool   `json:"success"`
	Mode     string `json:"mode,omitempty"`
	Message  string `json:"message,omitempty"`
	Response string `json:"response,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Ask answers a question about the user's accessible clients.
//
// @Summary      Ask a question about your clients
// @Description  Runs the query through the safety filter and the model or heuristic engine.
// @Tags         query
// @Accept       json
// @Produce      json
// @Param        body  body      queryRequest  true  "Query and selected user"
// @Success      200   {object}  envelope{data=domain.QueryResult}
// @Failure      400   {object}  envelope
// @Failure      404   {object}  envelope
// @Failure      429   {object}  envelope
// @Failure      500   {object}  envelope
// @Router       /api/query [post]
func (h *QueryHandler) Ask(c echo.Context) error {
	var req queryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res, err := h.svc.Ask(c.Request().Context(), ports.QueryInput{Query: req.Query, UserID: int64(req.UserID)})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, success(res))
}

// TestModel checks connectivity to the configured generative model.
//
// @Summary      Model connectivity check
// @Tags         health
// @Produce      json
// @Success      200  {object}  modelStatusResponse
// @Router       /api/test-model [get]
func (h *QueryHandler) TestModel(c echo.Context) error {
	s := h.svc.CheckModel(c.Request().Context())
	return c.JSON(http.StatusOK, modelStatusResponse{
		Success:  s.Success,
		Mode:     s.Mode,
		Message:  s.Message,
		Response: s.Response,
		Error:    s.Error,
	})
}
