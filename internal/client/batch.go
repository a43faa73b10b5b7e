package client

import (
	"fmt"
	"os"

	"kore-landing-backend/internal/schema"

	"gopkg.in/yaml.v3"
)

// LeadData is one lead of a YAML batch file
type LeadData struct {
	Name         string  `yaml:"name"`
	BusinessName string  `yaml:"business_name"`
	Email        string  `yaml:"email"`
	Whatsapp     *string `yaml:"whatsapp,omitempty"`
	Industry     string  `yaml:"industry"`
	Branches     *int    `yaml:"branches"`
	Comment      *string `yaml:"comment,omitempty"`
}

// LeadsFile is the top-level shape of a batch file
type LeadsFile struct {
	Leads []LeadData `yaml:"leads"`
}

// Request converts the YAML entry into a creation request
func (d LeadData) Request() *schema.CreateLeadRequest {
	return &schema.CreateLeadRequest{
		Name:         d.Name,
		BusinessName: d.BusinessName,
		Email:        d.Email,
		Whatsapp:     d.Whatsapp,
		Industry:     d.Industry,
		Branches:     d.Branches,
		Comment:      d.Comment,
	}
}

// ParseLeads decodes a YAML batch
func ParseLeads(data []byte) ([]*schema.CreateLeadRequest, error) {
	var file LeadsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse leads YAML: %w", err)
	}

	requests := make([]*schema.CreateLeadRequest, 0, len(file.Leads))
	for _, lead := range file.Leads {
		requests = append(requests, lead.Request())
	}
	return requests, nil
}

// LoadLeadsFile reads and decodes a YAML batch file
func LoadLeadsFile(path string) ([]*schema.CreateLeadRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return ParseLeads(data)
}
