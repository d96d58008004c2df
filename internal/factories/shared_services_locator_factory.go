package factories

import (
	"github.com/AnotherFullstackDev/promotectl/internal/config"
	"github.com/AnotherFullstackDev/promotectl/internal/placeholders"
)

type SharedServicesLocator struct {
	Config              *config.Config
	PlaceholdersService *placeholders.Service
}

func NewSharedServicesLocator(config *config.Config, placeholders *placeholders.Service) *SharedServicesLocator {
	return &SharedServicesLocator{
		config,
		placeholders,
	}
}
