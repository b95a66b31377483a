package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"fundadmin/allocation"
	"fundadmin/database"
	"fundadmin/models"
	"fundadmin/utils"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CreateStructureRequest struct {
	Name         string          `json:"name"`
	Currency     string          `json:"currency"`
	GpPercentage decimal.Decimal `json:"gp_percentage"`
}

// POST /api/structures
func CreateStructureHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateStructureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid JSON body"})
		return
	}
	if req.Name == "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "name is required"})
		return
	}
	if req.GpPercentage.IsNegative() || req.GpPercentage.GreaterThan(decimal.NewFromInt(100)) {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "gp_percentage must be between 0 and 100"})
		return
	}

	structure := models.Structure{
		Name:         req.Name,
		Currency:     req.Currency,
		GpPercentage: req.GpPercentage,
		Status:       "Active",
	}
	if structure.Currency == "" {
		structure.Currency = "USD"
	}

	if err := database.DB.Create(&structure).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to create structure"})
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{Success: true, Message: "Successfully", Data: structure})
}

// GET /api/structures
func ListStructuresHandler(w http.ResponseWriter, r *http.Request) {
	var structures []models.Structure
	if err := database.DB.Where("status = ?", "Active").Order("name ASC").Find(&structures).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data:    map[string]interface{}{"structures": structures},
	})
}

// GET /api/structures/{id}
func GetStructureHandler(w http.ResponseWriter, r *http.Request) {
	structure, ok := loadStructure(w, r)
	if !ok {
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: structure})
}

type AddInvestorRecordRequest struct {
	InvestorID       uint            `json:"investor_id"`
	OwnershipPercent decimal.Decimal `json:"ownership_percent"`
	CommitmentAmount decimal.Decimal `json:"commitment_amount"`
	FeeDiscount      decimal.Decimal `json:"fee_discount"`
	VatExempt        bool            `json:"vat_exempt"`
}

// POST /api/structures/{id}/investors
func AddInvestorRecordHandler(w http.ResponseWriter, r *http.Request) {
	structure, ok := loadStructure(w, r)
	if !ok {
		return
	}

	var req AddInvestorRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid JSON body"})
		return
	}
	if req.InvestorID == 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "investor_id is required"})
		return
	}
	if !req.OwnershipPercent.IsPositive() || req.OwnershipPercent.GreaterThan(decimal.NewFromInt(100)) {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "ownership_percent must be between 0 and 100"})
		return
	}
	if req.CommitmentAmount.IsNegative() || req.FeeDiscount.IsNegative() {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "commitment_amount and fee_discount must not be negative"})
		return
	}

	var investor models.Investor
	if err := database.DB.First(&investor, req.InvestorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Investor not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	record := models.StructureInvestor{
		StructureID:      structure.ID,
		InvestorID:       req.InvestorID,
		OwnershipPercent: req.OwnershipPercent,
		CommitmentAmount: req.CommitmentAmount,
		FeeDiscount:      req.FeeDiscount,
		VatExempt:        req.VatExempt,
	}
	if err := database.DB.Create(&record).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to create investor record"})
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{Success: true, Message: "Successfully", Data: record})
}

// GET /api/structures/{id}/investors
func ListInvestorRecordsHandler(w http.ResponseWriter, r *http.Request) {
	structure, ok := loadStructure(w, r)
	if !ok {
		return
	}

	records, err := allocation.NewRepository(database.DB).ListInvestorRecords(structure.ID)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data:    map[string]interface{}{"investors": records},
	})
}

// GET /api/structures/{id}/cumulative-called
func CumulativeCalledHandler(w http.ResponseWriter, r *http.Request) {
	structure, ok := loadStructure(w, r)
	if !ok {
		return
	}

	var excludeCallID *uint
	if s := r.URL.Query().Get("exclude_call_id"); s != "" {
		id64, err := strconv.ParseUint(s, 10, 32)
		if err != nil || id64 == 0 {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid exclude_call_id"})
			return
		}
		id := uint(id64)
		excludeCallID = &id
	}

	repo := allocation.NewRepository(database.DB)
	called, err := repo.CumulativeCalledByStructure(structure.ID, excludeCallID)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	items := make(map[string]string, len(called))
	for investorID, total := range called {
		items[strconv.FormatUint(uint64(investorID), 10)] = total.StringFixed(2)
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data:    map[string]interface{}{"cumulative_called": items},
	})
}

func loadStructure(w http.ResponseWriter, r *http.Request) (*models.Structure, bool) {
	id, ok := pathID(w, r)
	if !ok {
		return nil, false
	}
	var structure models.Structure
	if err := database.DB.First(&structure, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Structure not found"})
			return nil, false
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return nil, false
	}
	return &structure, true
}
