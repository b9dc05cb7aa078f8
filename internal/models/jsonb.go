package models

// JSONB is a free-form JSON object column
type JSONB map[string]interface{}
