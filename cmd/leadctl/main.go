package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"kore-landing-backend/internal/client"
	"kore-landing-backend/internal/database/models"
	"kore-landing-backend/internal/logger"
	"kore-landing-backend/internal/schema"

	"github.com/sirupsen/logrus"
)

type options struct {
	baseURL      string
	file         string
	timeout      time.Duration
	logLevel     string
	name         string
	businessName string
	email        string
	whatsapp     string
	industry     string
	branches     int
	comment      string
}

func parseFlags(args []string) (*options, error) {
	opts := &options{}
	fs := flag.NewFlagSet("leadctl", flag.ContinueOnError)
	fs.StringVar(&opts.baseURL, "url", envOr("KORE_API_URL", "http://localhost:5000"), "backend base URL")
	fs.StringVar(&opts.file, "file", "", "YAML file with a leads: list to submit")
	fs.DurationVar(&opts.timeout, "timeout", 15*time.Second, "per-request timeout")
	fs.StringVar(&opts.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	fs.StringVar(&opts.name, "name", "", "contact name")
	fs.StringVar(&opts.businessName, "business", "", "business name")
	fs.StringVar(&opts.email, "email", "", "contact email")
	fs.StringVar(&opts.whatsapp, "whatsapp", "", "WhatsApp number (optional)")
	fs.StringVar(&opts.industry, "industry", "", "industry")
	fs.IntVar(&opts.branches, "branches", 1, "number of branches")
	fs.StringVar(&opts.comment, "comment", "", "free-text comment (optional)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return opts, nil
}

func (o *options) requests() ([]*schema.CreateLeadRequest, error) {
	if o.file != "" {
		return client.LoadLeadsFile(o.file)
	}

	req := &schema.CreateLeadRequest{
		Name:         o.name,
		BusinessName: o.businessName,
		Email:        o.email,
		Industry:     o.industry,
		Branches:     schema.Ptr(o.branches),
	}
	if o.whatsapp != "" {
		req.Whatsapp = schema.Ptr(o.whatsapp)
	}
	if o.comment != "" {
		req.Comment = schema.Ptr(o.comment)
	}
	return []*schema.CreateLeadRequest{req}, nil
}

// run submits every request in order and returns how many failed
func run(ctx context.Context, hook *client.SubmitHook, requests []*schema.CreateLeadRequest) int {
	failed := 0
	for i, req := range requests {
		_, err := hook.Submit(ctx, req, func(lead *models.Lead) {
			logrus.WithFields(logrus.Fields{"index": i, "lead_id": lead.ID}).Info("Lead submitted")
		})
		if err != nil {
			failed++
			logrus.WithField("index", i).WithError(err).Debug("Lead submission failed")
		}
	}
	return failed
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	logger.Setup(opts.logLevel)

	requests, err := opts.requests()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load leads")
	}

	hook := client.NewSubmitHook(
		client.NewClient(opts.baseURL, client.WithTimeout(opts.timeout)),
		client.LogNotifier{Logger: logger.New()},
	)

	failed := run(context.Background(), hook, requests)
	if failed > 0 {
		fmt.Fprintf(os.Stderr, "%d of %d leads failed\n", failed, len(requests))
		os.Exit(1)
	}
}
