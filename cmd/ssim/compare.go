package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/cwbudde/ssim"
	"github.com/cwbudde/ssim/imgio"
	"github.com/cwbudde/ssim/internal/store"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	engine       string
	windowSize   int
	k1           float64
	k2           float64
	dynamicRange float64
	resizeCand   bool
	jsonOutput   bool
	reportDir    string
)

var compareCmd = &cobra.Command{
	Use:   "compare REFERENCE CANDIDATE",
	Short: "Compare two images",
	Long: `Compares two images and prints their structural similarity.
The reference engine uses Gaussian-weighted windows; the fast engine
approximates it with integral images and box windows.`,
	Args: cobra.ExactArgs(2),
	RunE: runCompare,
}

func init() {
	compareCmd.Flags().StringVar(&engine, "engine", "both", "Engine: reference, fast, both")
	compareCmd.Flags().IntVar(&windowSize, "window", 0, "Window size (0 = engine default: 11 reference, 8 fast)")
	compareCmd.Flags().Float64Var(&k1, "k1", 0, "k1 stabilization factor (0 = default 0.01)")
	compareCmd.Flags().Float64Var(&k2, "k2", 0, "k2 stabilization factor (0 = default 0.03)")
	compareCmd.Flags().Float64Var(&dynamicRange, "dynamic-range", 0, "Dynamic range L (0 = default 255)")
	compareCmd.Flags().BoolVar(&resizeCand, "resize", false, "Rescale the candidate to the reference dimensions")
	compareCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the result as JSON")
	compareCmd.Flags().StringVar(&reportDir, "save-report", "", "Persist the result as a report under this directory")

	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	switch engine {
	case "reference", "fast", "both":
	default:
		return fmt.Errorf("unknown engine: %s", engine)
	}

	refPath, candPath := args[0], args[1]

	refImg, err := imgio.Load(refPath)
	if err != nil {
		return fmt.Errorf("failed to load reference: %w", err)
	}
	candImg, err := imgio.Load(candPath)
	if err != nil {
		return fmt.Errorf("failed to load candidate: %w", err)
	}

	if resizeCand {
		b := refImg.Bounds()
		candImg = imgio.Resize(candImg, b.Dx(), b.Dy())
	}

	ref := imgio.Luminance(refImg)
	cand := imgio.Luminance(candImg)

	slog.Info("Loaded image pair", "width", ref.Width, "height", ref.Height)

	var opts []ssim.Option
	if windowSize > 0 {
		opts = append(opts, ssim.WithWindowSize(windowSize))
	}
	if k1 > 0 {
		opts = append(opts, ssim.WithK1(k1))
	}
	if k2 > 0 {
		opts = append(opts, ssim.WithK2(k2))
	}
	if dynamicRange > 0 {
		opts = append(opts, ssim.WithDynamicRange(dynamicRange))
	}

	report := &store.Report{
		JobID: uuid.New().String(),
		Config: store.CompareConfig{
			RefPath:      refPath,
			CandPath:     candPath,
			Engine:       engine,
			WindowSize:   windowSize,
			K1:           k1,
			K2:           k2,
			DynamicRange: dynamicRange,
			Resize:       resizeCand,
		},
		Width:     ref.Width,
		Height:    ref.Height,
		Timestamp: time.Now(),
	}

	if engine == "reference" || engine == "both" {
		report.Reference, err = timedScore(ssim.Compare, ref, cand, opts)
		if err != nil {
			return err
		}
	}
	if engine == "fast" || engine == "both" {
		report.Fast, err = timedScore(ssim.CompareFast, ref, cand, opts)
		if err != nil {
			return err
		}
	}

	if reportDir != "" {
		st, err := store.NewFSStore(reportDir)
		if err != nil {
			return fmt.Errorf("failed to open report store: %w", err)
		}
		if err := st.SaveReport(report.JobID, report); err != nil {
			return fmt.Errorf("failed to save report: %w", err)
		}
		slog.Info("Report saved", "job_id", report.JobID, "dir", reportDir)
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	if report.Reference != nil {
		fmt.Printf("reference: mssim=%.6f map=%dx%d (%.1f ms)\n",
			report.Reference.MSSIM, report.Reference.MapWidth, report.Reference.MapHeight,
			report.Reference.Elapsed*1000)
	}
	if report.Fast != nil {
		fmt.Printf("fast:      mssim=%.6f map=%dx%d (%.1f ms)\n",
			report.Fast.MSSIM, report.Fast.MapWidth, report.Fast.MapHeight,
			report.Fast.Elapsed*1000)
	}
	return nil
}

func timedScore(engine func(a, b *ssim.Image, opts ...ssim.Option) (*ssim.Result, error),
	ref, cand *ssim.Image, opts []ssim.Option) (*store.EngineScore, error) {

	start := time.Now()
	res, err := engine(ref, cand, opts...)
	if err != nil {
		return nil, err
	}
	return &store.EngineScore{
		MSSIM:     res.MSSIM,
		MapWidth:  res.Width,
		MapHeight: res.Height,
		Elapsed:   time.Since(start).Seconds(),
	}, nil
}
