package usecase

import (
	"context"
	"log/slog"

	"code-assist/internal/domain"
)

// AssistMessage is the fixed reply of the assistance collaborator.
const AssistMessage = "Assistance response based on the current project."

// AssistUsecase produces assistance for a whole project state.
type AssistUsecase interface {
	Execute(ctx context.Context, state domain.ProjectState) string
}

type assistUsecase struct {
	logger *slog.Logger
}

func NewAssistUsecase(logger *slog.Logger) AssistUsecase {
	if logger == nil {
		logger = slog.Default()
	}
	return &assistUsecase{logger: logger}
}

// Execute does not inspect the payload; the assistance engine lives outside this service.
func (u *assistUsecase) Execute(ctx context.Context, state domain.ProjectState) string {
	u.logger.DebugContext(ctx, "assist requested",
		"code_base_bytes", len(state.CodeBase),
		"open_files_bytes", len(state.OpenFiles),
		"active_edits_bytes", len(state.ActiveEdits))
	return AssistMessage
}
