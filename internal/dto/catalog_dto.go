package dto

import "decision-framework-be/internal/entity"

type ListPrinciplesResponse struct {
	Principles []*entity.Principle `json:"principles"`
}

type ListSopsResponse struct {
	Sops []*entity.SOP `json:"sops"`
}

type ListValuesResponse struct {
	Values []*entity.Value `json:"values"`
}
