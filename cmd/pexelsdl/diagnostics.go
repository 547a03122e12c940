package main

import (
	"errors"
	"fmt"

	apierrors "pexelsdl/pkg/errors"
)

// searchDiagnostics explains a failed search request to the user
func searchDiagnostics(err error) []string {
	var lines []string

	var apiErr *apierrors.Error
	if errors.As(err, &apiErr) && apiErr.Code != 0 {
		lines = append(lines, fmt.Sprintf("Error: %d - %s", apiErr.Code, apiErr.Reason))
	} else {
		lines = append(lines, fmt.Sprintf("Error: %v", err))
	}

	switch {
	case apierrors.IsType(err, apierrors.ErrorTypeAuth):
		lines = append(lines, "Invalid API Key. Please verify your key.")
	case apierrors.IsType(err, apierrors.ErrorTypeForbidden):
		lines = append(lines,
			"Forbidden. Possible reasons:",
			"- API key is invalid or expired",
			"- API key is not being sent correctly",
			"- Your IP address might be blocked",
		)
	default:
		lines = append(lines, "API request failed. Check your connection or API key.")
	}

	return lines
}
