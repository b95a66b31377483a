package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"fundadmin/allocation"
	"fundadmin/database"
	"fundadmin/models"
	"fundadmin/utils"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CreateCallRequest struct {
	StructureID     uint            `json:"structure_id"`
	TotalCallAmount decimal.Decimal `json:"total_call_amount"`
	CallDate        string          `json:"call_date"`
	DueDate         string          `json:"due_date"`
	DeadlineDate    string          `json:"deadline_date"`
	Purpose         *string         `json:"purpose"`

	ManagementFeeBase *string          `json:"management_fee_base"`
	ManagementFeeRate *decimal.Decimal `json:"management_fee_rate"`
	FeeRateOnNic      *decimal.Decimal `json:"fee_rate_on_nic"`
	FeeRateOnUnfunded *decimal.Decimal `json:"fee_rate_on_unfunded"`
	FeePeriod         *string          `json:"fee_period"`
	VatApplicable     bool             `json:"vat_applicable"`
	VatRate           *decimal.Decimal `json:"vat_rate"`
}

// POST /api/calls
func CreateCallHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateCallRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid JSON body"})
		return
	}

	if req.StructureID == 0 || !req.TotalCallAmount.IsPositive() {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "structure_id and a positive total_call_amount are required"})
		return
	}

	callDate, err := parseDate(req.CallDate, time.Now())
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "call_date must be YYYY-MM-DD"})
		return
	}
	dueDate, err := parseDate(req.DueDate, callDate.AddDate(0, 0, 14))
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "due_date must be YYYY-MM-DD"})
		return
	}

	db := database.DB
	var structure models.Structure
	if err := db.First(&structure, req.StructureID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Structure not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	call := models.CapitalCall{
		StructureID:       structure.ID,
		Reference:         utils.GenerateCallReference(structure.ID),
		CallDate:          callDate,
		DueDate:           dueDate,
		TotalCallAmount:   req.TotalCallAmount,
		TotalUnpaid:       req.TotalCallAmount,
		Status:            models.CallStatusDraft,
		Purpose:           req.Purpose,
		ManagementFeeBase: req.ManagementFeeBase,
		ManagementFeeRate: req.ManagementFeeRate,
		FeeRateOnNic:      req.FeeRateOnNic,
		FeeRateOnUnfunded: req.FeeRateOnUnfunded,
		FeePeriod:         req.FeePeriod,
		VatApplicable:     req.VatApplicable,
		VatRate:           req.VatRate,
	}
	if req.DeadlineDate != "" {
		deadline, err := parseDate(req.DeadlineDate, time.Time{})
		if err != nil {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "deadline_date must be YYYY-MM-DD"})
			return
		}
		call.DeadlineDate = &deadline
	}

	if err := db.Transaction(func(tx *gorm.DB) error {
		// call numbers are sequential per structure
		var lastNumber int
		if err := tx.Model(&models.CapitalCall{}).
			Where("structure_id = ?", structure.ID).
			Select("COALESCE(MAX(call_number), 0)").
			Scan(&lastNumber).Error; err != nil {
			return err
		}
		call.CallNumber = lastNumber + 1
		return tx.Create(&call).Error
	}); err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to create capital call"})
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{Success: true, Message: "Successfully", Data: call})
}

// GET /api/calls
func ListCallsHandler(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 25
	}
	offset := (page - 1) * limit

	db := database.DB
	query := db.Model(&models.CapitalCall{})
	if structureID := r.URL.Query().Get("structure_id"); structureID != "" {
		query = query.Where("structure_id = ?", structureID)
	}
	if status := r.URL.Query().Get("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var calls []models.CapitalCall
	if err := query.Order("id DESC").Limit(limit).Offset(offset).Find(&calls).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data:    map[string]interface{}{"calls": calls},
	})
}

// GET /api/calls/{id}
func GetCallHandler(w http.ResponseWriter, r *http.Request) {
	call, ok := loadCall(w, r)
	if !ok {
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: call})
}

// POST /api/calls/{id}/allocations
func BuildAllocationsHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	builder := allocation.NewBuilder(database.DB)
	allocations, err := builder.Build(id)
	if err != nil {
		switch {
		case errors.Is(err, allocation.ErrCallNotFound), errors.Is(err, allocation.ErrStructureNotFound):
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: err.Error()})
		case errors.Is(err, allocation.ErrDuplicateAllocation):
			utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: err.Error()})
		case errors.Is(err, allocation.ErrEmptyRoster), errors.Is(err, allocation.ErrInvalidFeeConfig):
			utils.WriteJSON(w, http.StatusUnprocessableEntity, utils.APIResponse{Success: false, Message: err.Error()})
		default:
			utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to build allocations"})
		}
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data:    map[string]interface{}{"allocations": allocations},
	})
}

// GET /api/calls/{id}/allocations
func ListAllocationsHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	repo := allocation.NewRepository(database.DB)
	if _, err := repo.GetCall(id); err != nil {
		if errors.Is(err, allocation.ErrCallNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: err.Error()})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	allocations, err := repo.ListAllocations(id)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data:    map[string]interface{}{"allocations": allocations},
	})
}

// POST /api/calls/{id}/send
func SendCallHandler(w http.ResponseWriter, r *http.Request) {
	call, ok := loadCall(w, r)
	if !ok {
		return
	}
	if call.Status != models.CallStatusDraft {
		utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "Only draft calls can be sent"})
		return
	}

	db := database.DB
	var count int64
	if err := db.Model(&models.Allocation{}).Where("call_id = ?", call.ID).Count(&count).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}
	if count == 0 {
		utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "Build allocations before sending the call"})
		return
	}

	now := time.Now()
	if err := db.Model(call).Updates(map[string]interface{}{
		"status":      models.CallStatusSent,
		"notice_date": now,
	}).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to update call"})
		return
	}

	notified := notifyInvestors(call)

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data:    map[string]interface{}{"status": models.CallStatusSent, "notified": notified},
	})
}

// DELETE /api/calls/{id}
func DeleteCallHandler(w http.ResponseWriter, r *http.Request) {
	call, ok := loadCall(w, r)
	if !ok {
		return
	}
	if call.Status != models.CallStatusDraft {
		utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "Only draft calls can be deleted"})
		return
	}

	// allocations are never deleted individually, only with their call
	if err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("call_id = ?", call.ID).Delete(&models.Allocation{}).Error; err != nil {
			return err
		}
		return tx.Delete(call).Error
	}); err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to delete call"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully"})
}

// POST /api/calls/{id}/notice-document
func UploadNoticeDocumentHandler(w http.ResponseWriter, r *http.Request) {
	call, ok := loadCall(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid multipart body"})
		return
	}
	file, header, err := r.FormFile("document")
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "document file is required"})
		return
	}
	defer file.Close()

	key := utils.NoticeDocumentKey(call.ID, header.Filename)
	if err := utils.UploadNoticeDocument(key, file); err != nil {
		utils.WriteJSON(w, http.StatusBadGateway, utils.APIResponse{Success: false, Message: "Failed to store notice document"})
		return
	}

	if err := database.DB.Model(call).Update("notice_document_key", key).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to update call"})
		return
	}

	url, err := utils.PresignNoticeDocument(key, 3600)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadGateway, utils.APIResponse{Success: false, Message: "Failed to presign notice document"})
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data:    map[string]interface{}{"key": key, "url": url},
	})
}

func notifyInvestors(call *models.CapitalCall) int {
	db := database.DB
	allocations, err := allocation.NewRepository(db).ListAllocations(call.ID)
	if err != nil {
		return 0
	}

	investorIDs := make([]uint, 0, len(allocations))
	byInvestor := make(map[uint]models.Allocation, len(allocations))
	for _, a := range allocations {
		investorIDs = append(investorIDs, a.InvestorID)
		byInvestor[a.InvestorID] = a
	}

	var investors []models.Investor
	if len(investorIDs) > 0 {
		db.Where("id IN ?", investorIDs).Find(&investors)
	}

	notified := 0
	for _, inv := range investors {
		a := byInvestor[inv.ID]
		subject := fmt.Sprintf("Capital call %s", call.Reference)
		body := fmt.Sprintf(
			"Dear %s,\n\nA capital call has been issued.\n\nReference: %s\nPrincipal due: %s\nManagement fee: %s\nVAT: %s\nTotal due: %s\nDue date: %s\n",
			inv.Name, call.Reference,
			a.PrincipalAmount.StringFixed(2), a.ManagementFeeNet.StringFixed(2),
			a.VatAmount.StringFixed(2), a.TotalDue.StringFixed(2),
			call.DueDate.Format("2006-01-02"),
		)
		if utils.SendMail(inv.Email, subject, body) == nil {
			notified++
		}
	}
	return notified
}

func pathID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	vars := mux.Vars(r)
	id64, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil || id64 == 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid id"})
		return 0, false
	}
	return uint(id64), true
}

func loadCall(w http.ResponseWriter, r *http.Request) (*models.CapitalCall, bool) {
	id, ok := pathID(w, r)
	if !ok {
		return nil, false
	}
	var call models.CapitalCall
	if err := database.DB.First(&call, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Capital call not found"})
			return nil, false
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return nil, false
	}
	return &call, true
}

func parseDate(s string, fallback time.Time) (time.Time, error) {
	if s == "" {
		return fallback, nil
	}
	return time.Parse("2006-01-02", s)
}
