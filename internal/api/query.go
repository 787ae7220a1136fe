package api

import (
	"encoding/json"
	"net/http"
	"strings"
)

type queryRequest struct {
	Query string `json:"query"`
}

type queryResponse struct {
	Response string `json:"response"`
}

func handleQuery(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if deps.Agent == nil {
		writeError(w, http.StatusNotImplemented, "agent is not configured")
		return
	}

	var request queryRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(request.Query) == "" {
		writeError(w, http.StatusBadRequest, "Query is required")
		return
	}

	answer, err := deps.Agent.Ask(r.Context(), request.Query)
	if err != nil {
		if deps.Logger != nil {
			deps.Logger.ErrorContext(r.Context(), "question failed", "error", err)
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, queryResponse{Response: answer})
}
