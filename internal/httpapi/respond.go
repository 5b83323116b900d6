package httpapi

import (
	"encoding/json"
	"net/http"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError отдаёт тело с единственным ключом error — формат всех
// клиентских ошибок, кроме полевой валидации.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeMessage отдаёт подтверждение операции с ключом message.
func writeMessage(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, map[string]string{"message": message})
}

// writeValidation отдаёт 422 с картой нарушений по полям как есть,
// без обёртки.
func writeValidation(w http.ResponseWriter, violations map[string][]string) {
	writeJSON(w, http.StatusUnprocessableEntity, violations)
}
