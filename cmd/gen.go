package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"fieldgen/pkg/engine/world"
	"fieldgen/pkg/game/devtools"
	"fieldgen/pkg/game/generator"
	"fieldgen/pkg/game/renderer"
)

var (
	single     bool
	mapCount   int
	seed       int64
	mapSize    int
	configFile string
	dump       bool
)

func init() {
	genCmd := &cobra.Command{
		Use:   "gen [PATH]",
		Short: "Generate localization fields",
		Long: `Generate one or more localization fields and save them to PATH.

Every start pose of a field gets its own listing file field_<map>_<n>.txt
holding all walls and that pose. Use "-" as PATH to print listings instead.

Examples:
  fieldgen gen out
  fieldgen gen out --single
  fieldgen gen -n 10 --seed 42 --dump out
  fieldgen gen --config field.yaml -`,
		Args: cobra.MaximumNArgs(1),
		RunE: runGen,
	}

	genCmd.Flags().BoolVar(&single, "single", false, "Save only the first start pose of each field")
	genCmd.Flags().IntVarP(&mapCount, "count", "n", 1, "Number of fields to generate")
	genCmd.Flags().Int64Var(&seed, "seed", 0, "Seed of the first field, the next ones count up from it (0 = random)")
	genCmd.Flags().IntVar(&mapSize, "size", generator.DefaultMapSize, "Cells per side, rack, wall and start point ranges scale along")
	genCmd.Flags().StringVarP(&configFile, "config", "c", "", "YAML options file")
	genCmd.Flags().BoolVar(&dump, "dump", false, "Write a debug dump next to each field")

	rootCmd.AddCommand(genCmd)
}

// loadOptions reads the options file, if any, and applies the flags that were set explicitly
func loadOptions(cmd *cobra.Command) (*generator.Options, error) {
	opts := generator.DefaultOptions()
	if configFile != "" {
		var err error
		if opts, err = generator.LoadOptions(configFile); err != nil {
			return nil, err
		}
	}

	if cmd.Flags().Changed("seed") {
		opts.Seed = seed
	}
	if cmd.Flags().Changed("size") {
		opts.Resize(mapSize)
	}

	return opts, opts.Validate()
}

// generateFields builds count fields concurrently, one generator per field.
// Field i uses seed base+i so a batch can be reproduced from its first seed.
func generateFields(opts *generator.Options, count int) ([]*generator.Field, error) {
	base := opts.Seed
	if base == 0 {
		base = time.Now().UnixNano()
	}

	fields := make([]*generator.Field, count)

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i := range count {
		o := *opts
		o.Seed = base + int64(i)
		o.Logger = log.WithField("map", i)

		g.Go(func() error {
			field, err := generator.New(&o).Generate()
			if err != nil {
				return fmt.Errorf("map %d: %w", i, err)
			}
			fields[i] = field
			return nil
		})
	}

	return fields, g.Wait()
}

// writeListing writes every wall of f followed by the given start poses
func writeListing(w io.Writer, f *generator.Field, poses ...world.Pose) error {
	b := bufio.NewWriter(w)
	for wall := range f.Walls() {
		fmt.Fprintf(b, "wall %d %d %d %d\n", wall.A.X, wall.A.Y, wall.B.X, wall.B.Y)
	}
	for _, p := range poses {
		fmt.Fprintf(b, "start %d %d %d\n", p.X, p.Y, p.Heading)
	}
	return b.Flush()
}

func saveListing(path string, f *generator.Field, poses ...world.Pose) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create listing: %w", err)
	}
	defer out.Close()

	return writeListing(out, f, poses...)
}

// saveListings writes the listing files of field index into dir and returns how many were written.
// Without start poses, or with single set, the field gets one file field_<index>.txt.
func saveListings(dir string, index int, f *generator.Field, single bool) (int, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, err
	}

	poses := slices.Collect(f.StartPoints())
	if single || len(poses) == 0 {
		path := filepath.Join(dir, fmt.Sprintf("field_%d.txt", index))
		return 1, saveListing(path, f, poses[:min(1, len(poses))]...)
	}

	for n, p := range poses {
		path := filepath.Join(dir, fmt.Sprintf("field_%d_%d.txt", index, n))
		if err := saveListing(path, f, p); err != nil {
			return n, err
		}
	}
	return len(poses), nil
}

func runGen(cmd *cobra.Command, args []string) error {
	path := "."
	if len(args) == 1 {
		path = args[0]
	}
	if mapCount < 1 {
		return fmt.Errorf("count must be at least 1, got %d", mapCount)
	}

	opts, err := loadOptions(cmd)
	if err != nil {
		return err
	}

	// Listings own stdout; messages move to stderr
	toStdout := path == "-"
	dumpDir := path
	if toStdout {
		renderer.Out = cmd.ErrOrStderr()
		dumpDir = "."
	}

	renderer.PrintLine("GENERATING", mapCount, opts.MapSize)

	fields, err := generateFields(opts, mapCount)
	if err != nil {
		return err
	}

	written := 0
	for i, f := range fields {
		if i > 0 {
			renderer.PrintRule()
		}
		plan := f.Plan()
		poses := slices.Collect(f.StartPoints())
		renderer.PrintLine("FIELD_SUMMARY", i, plan.Racks, plan.Components, f.WallCount(), len(poses), f.Seed())

		if toStdout {
			fmt.Fprintf(cmd.OutOrStdout(), "# field %d seed %d\n", i, f.Seed())
			if single {
				poses = poses[:min(1, len(poses))]
			}
			if err := writeListing(cmd.OutOrStdout(), f, poses...); err != nil {
				return err
			}
		} else {
			n, err := saveListings(path, i, f, single)
			written += n
			if err != nil {
				return err
			}
		}

		if dump {
			dumpPath, err := devtools.DumpFieldToFile(f, filepath.Join(dumpDir, fmt.Sprintf("field_%d.dump.txt", i)))
			if err != nil {
				return fmt.Errorf("failed to write dump: %w", err)
			}
			renderer.PrintLine("DUMP_WRITTEN", dumpPath)
		}
	}

	if !toStdout {
		renderer.PrintLine("LISTINGS_WRITTEN", written, path)
	}
	renderer.PrintLine("DONE")

	return nil
}
