package service

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mmynk/splitledger/internal/export"
	"github.com/mmynk/splitledger/internal/middleware"
)

// DownloadPattern is the route of the CSV balance sheet download.
const DownloadPattern = "GET /download/balance-sheet/user/{id}"

// DownloadHandler serves a user's balance sheet as a CSV attachment. It
// expects RequireAuthHTTP to have run and only serves the caller's own sheet.
func DownloadHandler(sheets SheetBuilder, logger *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		userID := r.PathValue("id")

		if err := requireSelf(middleware.GetUserID(ctx), userID); err != nil {
			http.Error(w, err.Error(), httpStatus(err))
			return
		}

		sheet, err := sheets.UserBalanceSheet(ctx, userID)
		if err != nil {
			logger.WarnContext(ctx, "Balance sheet download failed", "user_id", userID, "error", err)
			http.Error(w, err.Error(), httpStatus(err))
			return
		}

		// Render fully before writing headers so a failure can still become a 500.
		var buf bytes.Buffer
		if err := export.WriteUserSheet(&buf, sheet); err != nil {
			logger.ErrorContext(ctx, "Failed to render balance sheet", "user_id", userID, "error", err)
			http.Error(w, "failed to render balance sheet", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", export.ContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName(userID)))
		w.WriteHeader(http.StatusOK)
		_, _ = buf.WriteTo(w)

		logger.InfoContext(ctx, "Balance sheet downloaded", "user_id", userID, "transactions", len(sheet.Transactions))
	})
}
