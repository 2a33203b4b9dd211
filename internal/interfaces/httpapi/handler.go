package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/football-hub/internal/domain/competition"
	"github.com/riskibarqy/football-hub/internal/platform/logging"
	"github.com/riskibarqy/football-hub/internal/usecase"
)

// JobRunner is the part of the scheduler the admin routes use.
type JobRunner interface {
	Trigger(ctx context.Context, name string) error
	Status() usecase.SchedulerStatus
}

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Handler struct {
	reader      *usecase.ReadService
	chat        *usecase.ChatService
	jobs        JobRunner
	db          Pinger
	chatLimiter *ClientRateLimiter
	logger      *logging.Logger
	validator   *validator.Validate
}

func NewHandler(
	reader *usecase.ReadService,
	chat *usecase.ChatService,
	jobs JobRunner,
	db Pinger,
	chatLimiter *ClientRateLimiter,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		reader:      reader,
		chat:        chat,
		jobs:        jobs,
		db:          db,
		chatLimiter: chatLimiter,
		logger:      logger,
		validator:   validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := spans.Start(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// competitionFromQuery resolves ?league= and ?season=.
func (h *Handler) competitionFromQuery(r *http.Request) (competition.Competition, error) {
	query := r.URL.Query()
	return h.reader.ResolveCompetition(query.Get("league"), query.Get("season"))
}

func queryInt(r *http.Request, name string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%w: %s must be a non-negative integer", usecase.ErrInvalidInput, name)
	}
	return v, nil
}

func queryBool(r *http.Request, name string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(r.URL.Query().Get(name)))
	return err == nil && v
}

func pathID(r *http.Request) (int64, error) {
	raw := strings.TrimSpace(r.PathValue("id"))
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%w: id must be a positive integer", usecase.ErrInvalidInput)
	}
	return v, nil
}

type pagination struct {
	page    int
	perPage int
}

func queryPagination(r *http.Request) (pagination, error) {
	page, err := queryInt(r, "page")
	if err != nil {
		return pagination{}, err
	}
	perPage, err := queryInt(r, "per_page")
	if err != nil {
		return pagination{}, err
	}
	return pagination{page: page, perPage: perPage}, nil
}
