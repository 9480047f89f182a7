package handler

import (
	"net/http"

	"go-fintrack/common"
	"go-fintrack/service"
)

// DashboardHandler serves the aggregated landing page.
type DashboardHandler struct {
	transactionService *service.TransactionService
}

func NewDashboardHandler(s *service.TransactionService) *DashboardHandler {
	return &DashboardHandler{transactionService: s}
}

// Show renders the user's totals, balance, count and 5 most recent
// transactions.
func (h *DashboardHandler) Show(w http.ResponseWriter, r *http.Request) *common.AppError {
	userID, username, appErr := currentUser(r)
	if appErr != nil {
		return appErr
	}

	summary, err := h.transactionService.GetDashboard(r.Context(), userID)
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not load dashboard", err)
	}

	render(w, http.StatusOK, "dashboard", templateData{
		Title:    "Dashboard",
		Username: username,
		Flash:    popFlash(w, r),
		Summary:  summary,
	})
	return nil
}
