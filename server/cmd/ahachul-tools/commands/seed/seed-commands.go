package seed

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/ahachul/ahachul-backend/common/models"
	"github.com/ahachul/ahachul-backend/server/cmd/ahachul-tools/cli"
	"github.com/ahachul/ahachul-backend/server/cmd/ahachul-tools/commands"
	"github.com/ahachul/ahachul-backend/server/services/subway"
	"github.com/ahachul/ahachul-backend/server/store/stations"
	"github.com/ahachul/ahachul-backend/server/store/subway_lines"
)

func init() {
	seedSubwayCmd.Flags().StringVarP(
		&seedCmdConfig.file,
		"file",
		"f",
		"",
		"YAML file listing the subway lines and their stations")
	seedSubwayCmd.MarkFlagRequired("file")

	commands.RootCmd.AddCommand(seedRootCmd)
	seedRootCmd.AddCommand(seedSubwayCmd)
}

var seedCmdConfig = struct {
	file string
}{}

// SubwaySeedFile is the layout of a subway seed file:
//
//	lines:
//	  - name: "1호선"
//	    phone_number: "1544-7788"
//	    region_type: METROPOLITAN
//	    stations:
//	      - name: "서울역"
//	        identity: 1001000133
type SubwaySeedFile struct {
	Lines []SubwaySeedLine `yaml:"lines"`
}

type SubwaySeedLine struct {
	Name        string              `yaml:"name"`
	PhoneNumber string              `yaml:"phone_number"`
	RegionType  string              `yaml:"region_type"`
	Stations    []SubwaySeedStation `yaml:"stations"`
}

type SubwaySeedStation struct {
	Name     string `yaml:"name"`
	Identity int64  `yaml:"identity"`
}

// ParseSubwaySeed parses a subway seed file into lines ready for SubwayService.Seed.
// Creation times and line ids are filled in when seeding.
func ParseSubwaySeed(data []byte) ([]*models.SubwayLineWithStations, error) {
	var file SubwaySeedFile
	err := yaml.UnmarshalStrict(data, &file)
	if err != nil {
		return nil, fmt.Errorf("error parsing seed file: %w", err)
	}
	if len(file.Lines) == 0 {
		return nil, fmt.Errorf("error seed file does not list any lines")
	}
	lines := make([]*models.SubwayLineWithStations, 0, len(file.Lines))
	for i, l := range file.Lines {
		if l.Name == "" {
			return nil, fmt.Errorf("error line %d has no name", i+1)
		}
		line := &models.SubwayLineWithStations{
			SubwayLine: models.NewSubwayLine(models.Time{}, l.Name, l.PhoneNumber, l.RegionType),
		}
		for j, s := range l.Stations {
			if s.Name == "" {
				return nil, fmt.Errorf("error station %d on line %q has no name", j+1, l.Name)
			}
			line.Stations = append(line.Stations, models.NewStation(models.Time{}, models.SubwayLineID{}, s.Name, s.Identity))
		}
		lines = append(lines, line)
	}
	return lines, nil
}

var seedRootCmd = &cobra.Command{
	Use:   "seed subway",
	Short: "Loads reference data into the database",
}

var seedSubwayCmd = &cobra.Command{
	Use:           "subway --file lines.yaml",
	Short:         "Creates any subway lines and stations in the seed file that are not already in the database",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(seedCmdConfig.file)
		if err != nil {
			return fmt.Errorf("error reading seed file: %w", err)
		}
		lines, err := ParseSubwaySeed(data)
		if err != nil {
			return err
		}

		ctx := context.Background()
		tool, err := commands.OpenTool(ctx)
		if err != nil {
			return err
		}
		defer tool.Close()

		subwayService := subway.NewSubwayService(
			tool.DB,
			subway_lines.NewStore(tool.DB, tool.LogFactory),
			stations.NewStore(tool.DB, tool.LogFactory),
			tool.Clock,
			tool.LogFactory,
		)
		linesCreated, stationsCreated, err := subwayService.Seed(ctx, lines)
		if err != nil {
			return err
		}
		cli.Stdout.Printf("Created %d subway lines and %d stations", linesCreated, stationsCreated)
		return nil
	},
}
