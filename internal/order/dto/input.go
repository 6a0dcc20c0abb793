package dto

import "github.com/sideorder/sideorder/internal/model"

type CreateOrderInput struct {
	SessionID      string               `json:"sessionId" binding:"required"`
	ItemName       string               `json:"itemName" binding:"required"`
	ItemCategory   string               `json:"itemCategory"`
	Customizations model.Customizations `json:"customizations"`
	Notes          string               `json:"notes"`
}

type UpdateOrderInput struct {
	Customizations *model.Customizations `json:"customizations"`
	Notes          *string               `json:"notes"`
}
