package promote

import (
	"fmt"
	"os"

	"github.com/AnotherFullstackDev/promotectl/internal/factories"
	"github.com/AnotherFullstackDev/promotectl/internal/graph"
	"github.com/AnotherFullstackDev/promotectl/internal/promotion"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

type loginOutput struct {
	Command string `yaml:"command"`
	Type    string `yaml:"type"`
	Region  string `yaml:"region"`
}

type planOutput struct {
	Source struct {
		ImageURI string      `yaml:"image_uri"`
		ImageTag string      `yaml:"image_tag"`
		Login    loginOutput `yaml:"login"`
	} `yaml:"source"`
	Destination struct {
		DestinationURI string      `yaml:"destination_uri"`
		DestinationTag string      `yaml:"destination_tag,omitempty"`
		Login          loginOutput `yaml:"login"`
	} `yaml:"destination"`
	Grants []grantOutput `yaml:"grants"`
}

type grantOutput struct {
	Role       string `yaml:"role"`
	Access     string `yaml:"access"`
	Repository string `yaml:"repository"`
}

func newPromotePlanCmd(locator *factories.SharedServicesLocator) *cobra.Command {
	planCmd := &cobra.Command{
		Use:   "plan",
		Short: "Resolve the promotion and print the resulting plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			factory := factories.NewPromotionFactory(locator)

			source, err := factory.NewSource()
			if err != nil {
				return fmt.Errorf("constructing promotion source: %w", err)
			}

			destination, err := factory.NewDestination()
			if err != nil {
				return fmt.Errorf("constructing promotion destination: %w", err)
			}

			bindCtx, role, err := factory.NewBindContext()
			if err != nil {
				return fmt.Errorf("assembling bind context: %w", err)
			}

			sourceConfig, err := source.Bind(bindCtx)
			if err != nil {
				return fmt.Errorf("binding promotion source: %w", err)
			}

			destinationConfig, err := destination.Bind(bindCtx)
			if err != nil {
				return fmt.Errorf("binding promotion destination: %w", err)
			}

			encoded, err := yaml.Marshal(buildPlanOutput(sourceConfig, destinationConfig, role))
			if err != nil {
				return fmt.Errorf("encoding promotion plan: %w", err)
			}

			out := cmd.OutOrStdout()
			if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
				fmt.Fprintln(out, "Resolved promotion plan:")
			}
			fmt.Fprint(out, string(encoded))

			return nil
		},
	}

	return planCmd
}

func buildPlanOutput(source *promotion.SourceConfig, destination *promotion.DestinationConfig, role *graph.Role) planOutput {
	var out planOutput

	out.Source.ImageURI = source.ImageURI
	out.Source.ImageTag = source.ImageTag
	out.Source.Login = loginOutput{
		Command: source.Login.Command,
		Type:    string(source.Login.Type),
		Region:  source.Login.Region,
	}

	out.Destination.DestinationURI = destination.DestinationURI
	out.Destination.DestinationTag = destination.DestinationTag
	out.Destination.Login = loginOutput{
		Command: destination.Login.Command,
		Type:    string(destination.Login.Type),
		Region:  destination.Login.Region,
	}

	for _, grant := range role.Grants() {
		out.Grants = append(out.Grants, grantOutput{
			Role:       role.Name(),
			Access:     string(grant.Access),
			Repository: grant.RepositoryURI,
		})
	}

	return out
}
