package controllers

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"fundadmin/database"
	"fundadmin/models"
	"fundadmin/utils"
)

// POST /api/cron/payment-reminders (protected by header CRON_KEY)
//
// Reminds every investor with an unpaid allocation on a sent call whose
// due date falls within the next three days or has already passed.
func CronPaymentRemindersHandler(w http.ResponseWriter, r *http.Request) {
	key := r.Header.Get("X-CRON-KEY")
	if key == "" || key != os.Getenv("CRON_KEY") {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	db := database.DB
	horizon := time.Now().AddDate(0, 0, 3)

	var due []models.Allocation
	err := db.Model(&models.Allocation{}).
		Select("allocations.*").
		Joins("JOIN capital_calls ON capital_calls.id = allocations.call_id").
		Where("capital_calls.status IN ?", []string{models.CallStatusSent, models.CallStatusPartiallyPaid}).
		Where("allocations.status <> ?", models.AllocationStatusPaid).
		Where("allocations.due_date <= ?", horizon).
		Find(&due).Error
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	reminded := 0
	for _, a := range due {
		var investor models.Investor
		if err := db.First(&investor, a.InvestorID).Error; err != nil {
			continue
		}
		var call models.CapitalCall
		if err := db.First(&call, a.CallID).Error; err != nil {
			continue
		}

		outstanding := a.TotalDue.Sub(a.PaidAmount)
		subject := fmt.Sprintf("Payment reminder: capital call %s", call.Reference)
		body := fmt.Sprintf(
			"Dear %s,\n\nThis is a reminder that %s remains outstanding on capital call %s, due %s.\n",
			investor.Name, outstanding.StringFixed(2), call.Reference,
			a.DueDate.Format("2006-01-02"),
		)
		if utils.SendMail(investor.Email, subject, body) == nil {
			reminded++
		}
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Cron executed",
		Data:    map[string]interface{}{"reminded": reminded},
	})
}
