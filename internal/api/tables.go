package api

import "net/http"

func handleTables(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if deps.Tables == nil {
		writeError(w, http.StatusNotImplemented, "store is not configured")
		return
	}

	tables, err := deps.Tables.Tables(r.Context())
	if err != nil {
		if deps.Logger != nil {
			deps.Logger.ErrorContext(r.Context(), "list tables failed", "error", err)
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tables": tables})
}
