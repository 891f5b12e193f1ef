package ai

import (
	"context"
	"fmt"
)

// GeneratedExperience is the structured answer for an experience form.
type GeneratedExperience struct {
	Title        string   `json:"title"`
	Organization string   `json:"organization"`
	Period       string   `json:"period"`
	Description  string   `json:"description"`
	Type         string   `json:"type"`
	Tags         []string `json:"tags"`
}

// GeneratedCertification is the structured answer for a certification form.
type GeneratedCertification struct {
	Name         string   `json:"name"`
	Organization string   `json:"organization"`
	IssueDate    string   `json:"issueDate"`
	ExpiryDate   string   `json:"expiryDate"`
	CredentialID string   `json:"credentialId"`
	Skills       []string `json:"skills"`
}

// GeneratedProject is the structured answer for a project form.
type GeneratedProject struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
}

func imagePrompt(subject, userContext string) string {
	if userContext != "" {
		return fmt.Sprintf("Additional context from the user: %s\n\nExtract the %s details from this image:", userContext, subject)
	}
	return fmt.Sprintf("Extract the %s details from this image:", subject)
}

func textPrompt(systemPrompt, subject, text string) string {
	return fmt.Sprintf("%s\n\nHere is the text of the document:\n%s\n\nExtract the %s details and return JSON:", systemPrompt, text, subject)
}

// ExperienceFromImage extracts experience fields from a document image.
func (o *Orchestrator) ExperienceFromImage(ctx context.Context, imageURL, userContext string) (GeneratedExperience, error) {
	var out GeneratedExperience
	content, err := o.GenerateFromImage(ctx, experienceSystemPrompt, imagePrompt("experience", userContext), imageURL)
	if err != nil {
		return out, err
	}
	return out, ExtractJSON(content, &out)
}

// CertificationFromImage extracts certification fields from a certificate image.
func (o *Orchestrator) CertificationFromImage(ctx context.Context, imageURL, userContext string) (GeneratedCertification, error) {
	var out GeneratedCertification
	content, err := o.GenerateFromImage(ctx, certificationSystemPrompt, imagePrompt("certification", userContext), imageURL)
	if err != nil {
		return out, err
	}
	return out, ExtractJSON(content, &out)
}

// ProjectFromImage extracts project fields from an image.
func (o *Orchestrator) ProjectFromImage(ctx context.Context, imageURL, userContext string) (GeneratedProject, error) {
	var out GeneratedProject
	content, err := o.GenerateFromImage(ctx, projectSystemPrompt, imagePrompt("project", userContext), imageURL)
	if err != nil {
		return out, err
	}
	return out, ExtractJSON(content, &out)
}

// ExperienceFromText extracts experience fields from extracted document text,
// the fallback for PDFs and other sources that can't be sent as images.
func (o *Orchestrator) ExperienceFromText(ctx context.Context, text string) (GeneratedExperience, error) {
	var out GeneratedExperience
	content, err := o.Generate(ctx, []Message{NewMessage(RoleUser, textPrompt(experienceSystemPrompt, "experience", text))}, Options{})
	if err != nil {
		return out, err
	}
	return out, ExtractJSON(content, &out)
}

// CertificationFromText extracts certification fields from document text.
func (o *Orchestrator) CertificationFromText(ctx context.Context, text string) (GeneratedCertification, error) {
	var out GeneratedCertification
	content, err := o.Generate(ctx, []Message{NewMessage(RoleUser, textPrompt(certificationSystemPrompt, "certification", text))}, Options{})
	if err != nil {
		return out, err
	}
	return out, ExtractJSON(content, &out)
}

// ProjectFromText extracts project fields from document text.
func (o *Orchestrator) ProjectFromText(ctx context.Context, text string) (GeneratedProject, error) {
	var out GeneratedProject
	content, err := o.Generate(ctx, []Message{NewMessage(RoleUser, textPrompt(projectSystemPrompt, "project", text))}, Options{})
	if err != nil {
		return out, err
	}
	return out, ExtractJSON(content, &out)
}
