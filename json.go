package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

type errorResponse struct {
	Error string `json:"error"`
}

// Fields assigned by the system, rejected when a client submits them.
var readOnlyFields = []string{"id", "created_at", "updated_at"}

func encode(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		return fmt.Errorf("error encoding json, %v", err)
	}
	return nil
}

func decodeBookInput(r *http.Request, dst any) (map[string]string, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading request body, %v", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("error decoding json, %v", err)
	}

	fieldErrs := map[string]string{}
	for _, field := range readOnlyFields {
		if _, ok := raw[field]; ok {
			fieldErrs[field] = "Unknown field."
		}
	}

	// No field accepts an explicit null.
	for field, value := range raw {
		if _, ok := fieldErrs[field]; ok {
			continue
		}
		if string(bytes.TrimSpace(value)) == "null" {
			fieldErrs[field] = "Field may not be null."
		}
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return nil, fmt.Errorf("error decoding json, %v", err)
	}

	return fieldErrs, nil
}
