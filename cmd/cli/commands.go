package cli

import (
	"fmt"
	"os"

	"foodgram/cmd/config"
	migration "foodgram/cmd/database/migrate"
	"foodgram/cmd/database/seed"
	"foodgram/internal/utils"
	"foodgram/pkg/ingredient"
	"foodgram/pkg/tag"

	"github.com/gofiber/fiber/v2/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	listenAddr string
	csvFile    string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := connect()
		if err != nil {
			return err
		}

		app, err := config.NewApp(db)
		if err != nil {
			return err
		}

		log.Infof("Listening on %s", listenAddr)
		return app.Listen(listenAddr)
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := connect()
		if err != nil {
			return err
		}
		return migration.Migrate(db)
	},
}

var importIngredientsCmd = &cobra.Command{
	Use:   "import-ingredients",
	Short: "Load ingredients from a name,measurement_unit CSV file",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, file, err := openImport()
		if err != nil {
			return err
		}
		defer file.Close()

		res, err := seed.ImportIngredients(cmd.Context(), file, ingredient.NewIngredientRepository(db))
		if err != nil {
			return fmt.Errorf("import ingredients from %s: %w", csvFile, err)
		}
		cmd.Printf("%d ingredients created, %d skipped\n", res.Created, res.Skipped)
		return nil
	},
}

var importTagsCmd = &cobra.Command{
	Use:   "import-tags",
	Short: "Load tags from a name,color,slug CSV file",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, file, err := openImport()
		if err != nil {
			return err
		}
		defer file.Close()

		res, err := seed.ImportTags(cmd.Context(), file, tag.NewTagRepository(db))
		if err != nil {
			return fmt.Errorf("import tags from %s: %w", csvFile, err)
		}
		cmd.Printf("%d tags created, %d skipped\n", res.Created, res.Skipped)
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&listenAddr, "addr", ":8080", "address to listen on")

	for _, cmd := range []*cobra.Command{importIngredientsCmd, importTagsCmd} {
		cmd.Flags().StringVar(&csvFile, "csvfile", "", "CSV file to import (required)")
		_ = cmd.MarkFlagRequired("csvfile")
	}
}

func connect() (*gorm.DB, error) {
	utils.LoadConfigFile(configFile)

	db, err := config.ConnectDB()
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return db, nil
}

func openImport() (*gorm.DB, *os.File, error) {
	file, err := os.Open(csvFile)
	if err != nil {
		return nil, nil, err
	}

	db, err := connect()
	if err != nil {
		file.Close()
		return nil, nil, err
	}
	return db, file, nil
}
