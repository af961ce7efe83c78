package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"

	"github.com/cloudgov/console/pkg/cloud"
	"github.com/cloudgov/console/pkg/compliance"
	"github.com/cloudgov/console/pkg/demo"
	"github.com/cloudgov/console/pkg/iamrisk"
	"github.com/fatih/color"
	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"
)

type ReportCommand struct {
	FindingCount int
	Seed         int64
}

// NewReportCommand prints a compliance and IAM risk summary for the demo
// dataset to the terminal, without starting the server.
func NewReportCommand() *ffcli.Command {
	c := ReportCommand{}

	fs := flag.NewFlagSet("cloudgov-console report", flag.ExitOnError)
	fs.IntVar(&c.FindingCount, "findings", 25, "number of synthetic findings to generate")
	fs.Int64Var(&c.Seed, "seed", 0, "random seed for the dataset (0 uses the clock)")

	return &ffcli.Command{
		Name:       "report",
		ShortUsage: "cloudgov-console report [flags]",
		ShortHelp:  "Print a compliance and IAM risk report for the demo dataset.",
		FlagSet:    fs,
		Options:    []ff.Option{ff.WithEnvVarPrefix("CLOUDGOV")},
		Exec:       c.Exec,
	}
}

func (c *ReportCommand) Exec(ctx context.Context, _ []string) error {
	var rnd *rand.Rand
	if c.Seed != 0 {
		rnd = rand.New(rand.NewSource(c.Seed))
	}
	gen := demo.New(rnd)

	findings := gen.Findings(c.FindingCount)
	policies := gen.Policies()
	roles := gen.Roles(policies)
	users := gen.Users()

	summary := compliance.Score(findings)

	bold := color.New(color.Bold)

	bold.Println("Compliance")
	fmt.Printf("  score: %s  grade: %s\n", scoreColor(summary.Score).Sprintf("%d", summary.Score), gradeColor(summary.Grade).Sprint(summary.Grade))
	fmt.Printf("  open findings: %d critical, %d high, %d medium, %d low\n",
		summary.Breakdown.Critical, summary.Breakdown.High, summary.Breakdown.Medium, summary.Breakdown.Low)

	bold.Println("\nRoles")
	for _, r := range roles {
		printRisk(r.Name, r.RiskScore)
		if r.IsOverlyPermissive {
			color.New(color.FgYellow).Println("      overly permissive")
		}
	}

	bold.Println("\nUsers")
	for _, u := range users {
		printRisk(u.Username, u.RiskScore)
		if !u.MFAEnabled {
			color.New(color.FgYellow).Println("      MFA disabled")
		}
	}

	return nil
}

func printRisk(name string, score int) {
	level := iamrisk.Level(score)
	fmt.Fprintf(os.Stdout, "  %-20s %s (%s)\n", name, riskColor(level).Sprintf("%d", score), level)
}

func riskColor(level cloud.RiskLevel) *color.Color {
	switch level {
	case cloud.RiskHigh:
		return color.New(color.FgRed)
	case cloud.RiskMedium:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgGreen)
	}
}

func scoreColor(score int) *color.Color {
	switch {
	case score >= 90:
		return color.New(color.FgGreen)
	case score >= 70:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}

func gradeColor(grade string) *color.Color {
	switch grade {
	case "A", "B":
		return color.New(color.FgGreen)
	case "C", "D":
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}
