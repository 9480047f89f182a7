package handler

import (
	"net/http"
	"strconv"
	"time"

	"go-fintrack/common"
	"go-fintrack/model"
	"go-fintrack/service"
)

// TransactionHandler serves the list, create, update and delete pages.
type TransactionHandler struct {
	transactionService *service.TransactionService
}

func NewTransactionHandler(s *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: s}
}

// pathID parses the {id} segment. Malformed ids get the same observable
// outcome as ids the caller does not own: not found.
func pathID(r *http.Request) (int, *common.AppError) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		return 0, common.NewAppError(http.StatusNotFound, "Transaction not found", nil)
	}
	return id, nil
}

func transactionFormFromRequest(r *http.Request) model.TransactionForm {
	return model.TransactionForm{
		Title:       r.PostFormValue("title"),
		Amount:      r.PostFormValue("amount"),
		Kind:        r.PostFormValue("kind"),
		Category:    r.PostFormValue("category"),
		Description: r.PostFormValue("description"),
		Date:        r.PostFormValue("date"),
	}
}

// List renders the filtered transaction listing. The filter parameters can
// only narrow within the caller's own records.
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) *common.AppError {
	userID, username, appErr := currentUser(r)
	if appErr != nil {
		return appErr
	}

	q := r.URL.Query()
	filter := model.TransactionFilter{
		Search:   q.Get("search"),
		Kind:     q.Get("type"),
		Category: q.Get("category"),
	}

	transactions, err := h.transactionService.ListTransactions(userID, filter)
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not load transactions", err)
	}

	render(w, http.StatusOK, "transaction_list", templateData{
		Title:        "Transactions",
		Username:     username,
		Flash:        popFlash(w, r),
		Filter:       filter,
		Categories:   model.Categories,
		Transactions: transactions,
	})
	return nil
}

// CreateForm renders the empty transaction form, with the date pre-filled to
// today.
func (h *TransactionHandler) CreateForm(w http.ResponseWriter, r *http.Request) *common.AppError {
	_, username, appErr := currentUser(r)
	if appErr != nil {
		return appErr
	}

	render(w, http.StatusOK, "transaction_form", templateData{
		Title:      "Add Transaction",
		Username:   username,
		Action:     "Create",
		Categories: model.Categories,
		Form:       model.TransactionForm{Date: time.Now().Format("2006-01-02")},
	})
	return nil
}

// Create validates the submission and persists a new transaction owned by
// the session user.
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) *common.AppError {
	userID, username, appErr := currentUser(r)
	if appErr != nil {
		return appErr
	}

	if err := r.ParseForm(); err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid form submission", err)
	}
	form := transactionFormFromRequest(r)

	if fieldErrors := common.ValidateForm(form); !fieldErrors.Empty() {
		render(w, http.StatusUnprocessableEntity, "transaction_form", templateData{
			Title:      "Add Transaction",
			Username:   username,
			Action:     "Create",
			Categories: model.Categories,
			Form:       form,
			Errors:     fieldErrors,
		})
		return nil
	}

	if _, err := h.transactionService.CreateTransaction(r.Context(), userID, form.Normalize()); err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not save transaction", err)
	}

	setFlash(w, "Transaction added successfully!")
	http.Redirect(w, r, "/transactions", http.StatusSeeOther)
	return nil
}

// UpdateForm renders the form pre-filled with the stored record.
func (h *TransactionHandler) UpdateForm(w http.ResponseWriter, r *http.Request) *common.AppError {
	userID, username, appErr := currentUser(r)
	if appErr != nil {
		return appErr
	}
	id, appErr := pathID(r)
	if appErr != nil {
		return appErr
	}

	transaction, err := h.transactionService.GetTransactionForUser(userID, id)
	if err != nil {
		if err == service.ErrTransactionNotFound {
			return common.NewAppError(http.StatusNotFound, "Transaction not found", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not load transaction", err)
	}

	render(w, http.StatusOK, "transaction_form", templateData{
		Title:      "Edit Transaction",
		Username:   username,
		Action:     "Update",
		Categories: model.Categories,
		Form:       model.FormFromTransaction(transaction),
	})
	return nil
}

// Update validates the submission and rewrites the record, provided the
// session user owns it.
func (h *TransactionHandler) Update(w http.ResponseWriter, r *http.Request) *common.AppError {
	userID, username, appErr := currentUser(r)
	if appErr != nil {
		return appErr
	}
	id, appErr := pathID(r)
	if appErr != nil {
		return appErr
	}

	if err := r.ParseForm(); err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid form submission", err)
	}
	form := transactionFormFromRequest(r)

	if fieldErrors := common.ValidateForm(form); !fieldErrors.Empty() {
		render(w, http.StatusUnprocessableEntity, "transaction_form", templateData{
			Title:      "Edit Transaction",
			Username:   username,
			Action:     "Update",
			Categories: model.Categories,
			Form:       form,
			Errors:     fieldErrors,
		})
		return nil
	}

	if _, err := h.transactionService.UpdateTransaction(r.Context(), userID, id, form.Normalize()); err != nil {
		if err == service.ErrTransactionNotFound {
			return common.NewAppError(http.StatusNotFound, "Transaction not found", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not update transaction", err)
	}

	setFlash(w, "Transaction updated successfully!")
	http.Redirect(w, r, "/transactions", http.StatusSeeOther)
	return nil
}

// DeleteConfirm is the first half of the two-phase delete: it describes the
// pending deletion without mutating anything.
func (h *TransactionHandler) DeleteConfirm(w http.ResponseWriter, r *http.Request) *common.AppError {
	userID, username, appErr := currentUser(r)
	if appErr != nil {
		return appErr
	}
	id, appErr := pathID(r)
	if appErr != nil {
		return appErr
	}

	transaction, err := h.transactionService.GetTransactionForUser(userID, id)
	if err != nil {
		if err == service.ErrTransactionNotFound {
			return common.NewAppError(http.StatusNotFound, "Transaction not found", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not load transaction", err)
	}

	render(w, http.StatusOK, "transaction_confirm_delete", templateData{
		Title:       "Delete Transaction",
		Username:    username,
		Transaction: transaction,
	})
	return nil
}

// Delete is the second half of the two-phase delete: the irreversible commit.
func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) *common.AppError {
	userID, _, appErr := currentUser(r)
	if appErr != nil {
		return appErr
	}
	id, appErr := pathID(r)
	if appErr != nil {
		return appErr
	}

	if err := h.transactionService.DeleteTransaction(r.Context(), userID, id); err != nil {
		if err == service.ErrTransactionNotFound {
			return common.NewAppError(http.StatusNotFound, "Transaction not found", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not delete transaction", err)
	}

	setFlash(w, "Transaction deleted successfully!")
	http.Redirect(w, r, "/transactions", http.StatusSeeOther)
	return nil
}
