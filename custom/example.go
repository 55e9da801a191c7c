package custom

import (
	"context"
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"brickyard.GO/api"
	"brickyard.GO/cmd"
	"brickyard.GO/cron"
	gqlregistry "brickyard.GO/graphql/registry"
)

func init() {
	// GraphQL extension: extension(name: "echoArgs", args: "{\"note\":\"hi\"}")
	gqlregistry.Register("echoArgs", func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		var in struct {
			Note string `mapstructure:"note"`
		}
		if err := gqlregistry.DecodeArgs(args, &in); err != nil {
			return nil, err
		}
		return map[string]string{"note": in.Note}, nil
	})

	// CLI command
	cmd.Register(&cobra.Command{
		Use:   "custom:hello",
		Short: "Custom command example",
		Run: func(c *cobra.Command, args []string) {
			fmt.Println("Hello from custom command")
		},
	})

	// Cron job
	cron.Register("customping", "@every 1m", func(args ...string) {
		fmt.Println("Custom cron: ping at", args)
	})

	// HTTP route
	api.RegisterGET("/custom/ping", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"pong": "ok"})
	})
}
