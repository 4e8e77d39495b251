package helpers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
)

// DecodeLenient fills v from the request body. An absent, empty or
// malformed body leaves v as the empty payload instead of failing.
func DecodeLenient(r io.Reader, v any) {
	b, err := io.ReadAll(io.LimitReader(r, 2<<20))
	if err != nil {
		return
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return
	}
	_ = json.Unmarshal(b, v)
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func HttpError(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, map[string]string{"error": msg})
}
