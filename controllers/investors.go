package controllers

import (
	"encoding/json"
	"net/http"

	"fundadmin/database"
	"fundadmin/models"
	"fundadmin/utils"
)

type CreateInvestorRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// POST /api/investors
func CreateInvestorHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateInvestorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid JSON body"})
		return
	}
	if req.Name == "" || req.Email == "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "name and email are required"})
		return
	}

	investor := models.Investor{
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
		Status: "Active",
	}
	if err := database.DB.Create(&investor).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to create investor"})
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{Success: true, Message: "Successfully", Data: investor})
}

// GET /api/investors
func ListInvestorsHandler(w http.ResponseWriter, r *http.Request) {
	var investors []models.Investor
	if err := database.DB.Where("status = ?", "Active").Order("name ASC").Find(&investors).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data:    map[string]interface{}{"investors": investors},
	})
}
