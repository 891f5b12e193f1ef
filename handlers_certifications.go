package folio

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

type certificationPayload struct {
	Name         *string `json:"name"`
	Organization *string `json:"organization"`
	IssueDate    *string `json:"issueDate"`
	ExpiryDate   *string `json:"expiryDate"`
	// Credential fields arrive in either naming convention depending on the
	// client generation.
	CredentialID       *string   `json:"credentialId"`
	CredentialIDSnake  *string   `json:"credential_id"`
	CredentialURL      *string   `json:"credentialUrl"`
	CredentialURLSnake *string   `json:"credential_url"`
	Image              *string   `json:"image"`
	Skills             *[]string `json:"skills"`
}

func (p *certificationPayload) credentialID() *string {
	if p.CredentialID != nil {
		return p.CredentialID
	}
	return p.CredentialIDSnake
}

func (p *certificationPayload) credentialURL() *string {
	if p.CredentialURL != nil {
		return p.CredentialURL
	}
	return p.CredentialURLSnake
}

func (a *App) handleListCertifications(c echo.Context) error {
	certifications, err := a.Store.ListCertifications()
	if err != nil {
		c.Logger().Errorf("list certifications: %v", err)
		return jsonError(c, http.StatusInternalServerError, "Failed to fetch certifications")
	}
	return c.JSON(http.StatusOK, certifications)
}

func (a *App) handleCreateCertification(c echo.Context) error {
	var in certificationPayload
	if err := c.Bind(&in); err != nil {
		return jsonError(c, http.StatusBadRequest, "Invalid request body")
	}
	name := ""
	if in.Name != nil {
		name = strings.TrimSpace(*in.Name)
	}
	if name == "" {
		return jsonError(c, http.StatusBadRequest, "Name is required")
	}

	cert := Certification{Name: sanitizeString(name)}
	if in.Organization != nil {
		cert.Organization = sanitizeString(*in.Organization)
	}
	if in.IssueDate != nil {
		cert.IssueDate = yearMonth(strings.TrimSpace(*in.IssueDate))
	}
	if in.ExpiryDate != nil {
		cert.ExpiryDate = yearMonth(strings.TrimSpace(*in.ExpiryDate))
	}
	if v := in.credentialID(); v != nil {
		cert.CredentialID = sanitizeString(*v)
	}
	if v := in.credentialURL(); v != nil {
		cert.CredentialURL = sanitizeString(*v)
	}
	if in.Image != nil {
		cert.Image = sanitizeString(*in.Image)
	}
	if in.Skills != nil {
		cert.Skills = sanitizeList(*in.Skills)
	}

	created, err := a.Store.CreateCertification(cert)
	if err != nil {
		c.Logger().Errorf("create certification: %v", err)
		return jsonError(c, http.StatusInternalServerError, "Failed to create certification")
	}
	c.Logger().Infof("created certification %d (%s)", created.ID, created.Name)
	return c.JSON(http.StatusOK, created)
}

func (a *App) handleUpdateCertification(c echo.Context) error {
	id, ok := requestID(c)
	if !ok {
		return jsonError(c, http.StatusBadRequest, "Invalid ID")
	}
	var in certificationPayload
	if err := c.Bind(&in); err != nil {
		return jsonError(c, http.StatusBadRequest, "Invalid request body")
	}
	cert, err := a.Store.GetCertification(id)
	if err == ErrNotFound {
		return jsonError(c, http.StatusNotFound, "Certification not found")
	}
	if err != nil {
		c.Logger().Errorf("update certification %d: %v", id, err)
		return jsonError(c, http.StatusInternalServerError, "Failed to update certification")
	}

	if in.Name != nil && strings.TrimSpace(*in.Name) != "" {
		cert.Name = sanitizeString(strings.TrimSpace(*in.Name))
	}
	if in.Organization != nil {
		cert.Organization = sanitizeString(*in.Organization)
	}
	if in.IssueDate != nil {
		cert.IssueDate = yearMonth(strings.TrimSpace(*in.IssueDate))
	}
	if in.ExpiryDate != nil {
		cert.ExpiryDate = yearMonth(strings.TrimSpace(*in.ExpiryDate))
	}
	if v := in.credentialID(); v != nil {
		cert.CredentialID = sanitizeString(*v)
	}
	if v := in.credentialURL(); v != nil {
		cert.CredentialURL = sanitizeString(*v)
	}
	if in.Image != nil {
		cert.Image = sanitizeString(*in.Image)
	}
	if in.Skills != nil {
		cert.Skills = sanitizeList(*in.Skills)
	}

	if err := a.Store.UpdateCertification(cert); err != nil {
		c.Logger().Errorf("update certification %d: %v", id, err)
		return jsonError(c, http.StatusInternalServerError, "Failed to update certification")
	}
	c.Logger().Infof("updated certification %d", cert.ID)
	return c.JSON(http.StatusOK, cert)
}

func (a *App) handleDeleteCertification(c echo.Context) error {
	id, ok := requestID(c)
	if !ok {
		return jsonError(c, http.StatusBadRequest, "Invalid ID")
	}
	if err := a.Store.DeleteCertification(id); err != nil {
		c.Logger().Errorf("delete certification %d: %v", id, err)
		return jsonError(c, http.StatusInternalServerError, "Failed to delete certification")
	}
	c.Logger().Infof("deleted certification %d", id)
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
