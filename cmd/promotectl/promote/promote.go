package promote

import (
	"github.com/AnotherFullstackDev/promotectl/internal/factories"
	"github.com/spf13/cobra"
)

func NewPromoteCmd(locator *factories.SharedServicesLocator) *cobra.Command {
	promoteCmd := &cobra.Command{
		Use:   "promote",
		Short: "Resolve and inspect an image promotion",
	}

	promoteCmd.AddCommand(newPromotePlanCmd(locator))

	return promoteCmd
}
