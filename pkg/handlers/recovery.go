package handlers

import "github.com/arushahmd/compass-voice/pkg/domain"

// errorRecovery leaves ERROR_RECOVERY on any acknowledgement. The context is
// dropped either way since it is what put the session here.
func (s *Set) errorRecovery(req Request) domain.HandlerResult {
	if req.Intent == domain.IntentCancel {
		return cancelled()
	}
	return domain.HandlerResult{
		NextState:    domain.StateIdle,
		ResponseKey:  "error_recovered",
		ResetContext: true,
	}
}
