package server

import (
	"github.com/1broseidon/textviz/client"
	"github.com/1broseidon/textviz/models"
	"github.com/1broseidon/textviz/orchestrator"
)

type GenerateRequest struct {
	Input    string `json:"input"`
	Category string `json:"category" validate:"omitempty,oneof=auto flowchart mindmap chart illustration"`
}

type SessionResponse struct {
	ID string `json:"id"`
}

type ResultResponse struct {
	Category    models.Category `json:"category"`
	Content     string          `json:"content"`
	Description string          `json:"description"`
}

type SnapshotResponse struct {
	Phase       models.Phase    `json:"phase"`
	Busy        bool            `json:"busy"`
	Error       string          `json:"error,omitempty"`
	Result      *ResultResponse `json:"result,omitempty"`
	Rendered    string          `json:"rendered,omitempty"`
	RenderError string          `json:"render_error,omitempty"`
	URLMode     bool            `json:"url_mode"`
}

func toSnapshotResponse(s orchestrator.State, busy bool) *SnapshotResponse {
	res := &SnapshotResponse{
		Phase:       s.Phase,
		Busy:        busy,
		Error:       s.Error,
		RenderError: s.RenderError,
	}
	if s.Request != nil {
		res.URLMode = client.IsURL(s.Request.Input)
	}
	if s.Result != nil {
		res.Result = &ResultResponse{
			Category:    s.Result.Category(),
			Content:     s.Result.Content(),
			Description: s.Result.Desc(),
		}
	}
	if s.Rendered != nil {
		res.Rendered = s.Rendered.SVG
	}
	return res
}
