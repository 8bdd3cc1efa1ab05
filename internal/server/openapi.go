package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "GeoPersona API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Game-session API for the GeoPersona geography guessing game.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Returns the status of the preferences database and the round backend.")
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// GET /api/game/state
	getState, _ := r.NewOperationContext(http.MethodGet, "/api/game/state")
	getState.SetSummary("Get game state")
	getState.SetDescription("Returns the current round, guess, result and map view. Creates the session on first call.")
	getState.AddRespStructure(StateResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getState)

	// POST /api/game/round
	postRound, _ := r.NewOperationContext(http.MethodPost, "/api/game/round")
	postRound.SetSummary("Start a new round")
	postRound.SetDescription("Starts a fresh round, clearing any previous guess and result. An explicit mode becomes the stored preference.")
	postRound.AddReqStructure(NewRoundRequest{})
	postRound.AddRespStructure(StateResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postRound.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(postRound)

	// POST /api/game/guess
	postGuess, _ := r.NewOperationContext(http.MethodPost, "/api/game/guess")
	postGuess.SetSummary("Propose a guess coordinate")
	postGuess.SetDescription("Places or moves the guess pin. Rejected (accepted=false) while the round is locked.")
	postGuess.AddReqStructure(GuessRequest{})
	postGuess.AddRespStructure(GuessAck{}, openapi.WithHTTPStatus(http.StatusOK))
	postGuess.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(postGuess)

	// POST /api/game/submit
	postSubmit, _ := r.NewOperationContext(http.MethodPost, "/api/game/submit")
	postSubmit.SetSummary("Submit the guess")
	postSubmit.SetDescription("Scores the current guess against the round's hidden answer and locks the round.")
	postSubmit.AddRespStructure(StateResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(postSubmit)

	// PUT /api/game/mode
	putMode, _ := r.NewOperationContext(http.MethodPut, "/api/game/mode")
	putMode.SetSummary("Set game mode")
	putMode.SetDescription("Persists the round-generation mode and starts a fresh round with it.")
	putMode.AddReqStructure(ModeRequest{})
	putMode.AddRespStructure(StateResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	putMode.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(putMode)

	// PUT /api/game/style
	putStyle, _ := r.NewOperationContext(http.MethodPut, "/api/game/style")
	putStyle.SetSummary("Set map style")
	putStyle.SetDescription("Persists the tile style. Display-only: never touches round, guess or result.")
	putStyle.AddReqStructure(MapStyleRequest{})
	putStyle.AddRespStructure(StateResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	putStyle.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(putStyle)

	// GET /api/game/events
	getEvents, _ := r.NewOperationContext(http.MethodGet, "/api/game/events")
	getEvents.SetSummary("SSE event stream")
	getEvents.SetDescription("Server-Sent Events stream announcing state versions; the client re-fetches /api/game/state.")
	getEvents.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/event-stream"))
	_ = r.AddOperation(getEvents)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
