package folio

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/image/draw"
)

const (
	maxImageWidth = 800
	jpegQuality   = 80
	maxUploadSize = 10 << 20 // 10MB
	uploadsSubdir = "uploads"
)

// processImage decodes an image from src, resizes it down to maxImageWidth
// if wider, and encodes it as JPEG. Returns metadata and the encoded bytes.
func processImage(src io.Reader, originalName string) (Image, []byte, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return Image{}, nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if w > maxImageWidth {
		newH := h * maxImageWidth / w
		dst := image.NewRGBA(image.Rect(0, 0, maxImageWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
		w = maxImageWidth
		h = newH
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return Image{}, nil, fmt.Errorf("encode jpeg: %w", err)
	}

	filename := slugifyFilename(originalName) + ".jpg"

	return Image{
		Filename:     filename,
		OriginalName: originalName,
		Width:        w,
		Height:       h,
		Size:         buf.Len(),
		UploadedAt:   time.Now().UTC().Format(time.RFC3339),
	}, buf.Bytes(), nil
}

// slugifyFilename converts a filename (without extension) to a URL-safe slug.
func slugifyFilename(name string) string {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	return Slugify(base)
}

// ensureUniqueFilename appends a counter if filename already exists in the
// uploads directory or database.
func (a *App) ensureUniqueFilename(img *Image) {
	dir := filepath.Join(a.Config.StaticDir, uploadsSubdir)
	base := strings.TrimSuffix(img.Filename, ".jpg")
	candidate := img.Filename
	counter := 1
	for {
		if _, err := os.Stat(filepath.Join(dir, candidate)); err == nil {
			counter++
			candidate = fmt.Sprintf("%s-%d.jpg", base, counter)
			continue
		}
		existing, _ := a.Store.ListImages()
		found := false
		for _, ex := range existing {
			if ex.Filename == candidate {
				found = true
				break
			}
		}
		if found {
			counter++
			candidate = fmt.Sprintf("%s-%d.jpg", base, counter)
			continue
		}
		break
	}
	img.Filename = candidate
}

func (a *App) handleImageList(c echo.Context) error {
	if !IsAdmin(c) {
		return jsonError(c, http.StatusUnauthorized, "Authentication required")
	}
	images, err := a.Store.ListImages()
	if err != nil {
		c.Logger().Errorf("list images: %v", err)
		return jsonError(c, http.StatusInternalServerError, "Failed to fetch images")
	}
	return c.JSON(http.StatusOK, images)
}

func (a *App) handleImageUpload(c echo.Context) error {
	if !IsAdmin(c) {
		return jsonError(c, http.StatusUnauthorized, "Authentication required")
	}

	file, err := c.FormFile("image")
	if err != nil {
		return jsonError(c, http.StatusBadRequest, "No image file provided")
	}
	if file.Size > maxUploadSize {
		return jsonError(c, http.StatusBadRequest, "File too large (max 10MB)")
	}

	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	img, data, err := processImage(src, file.Filename)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, "Invalid image: "+err.Error())
	}

	a.ensureUniqueFilename(&img)

	dir := filepath.Join(a.Config.StaticDir, uploadsSubdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create uploads dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, img.Filename), data, 0o644); err != nil {
		return fmt.Errorf("write image: %w", err)
	}
	if err := a.Store.SaveImage(img); err != nil {
		return err
	}

	c.Logger().Infof("uploaded image %s (%dx%d, %d bytes)", img.Filename, img.Width, img.Height, img.Size)
	img.URL = "/public/" + uploadsSubdir + "/" + img.Filename
	return c.JSON(http.StatusOK, img)
}

func (a *App) handleImageDelete(c echo.Context) error {
	if !IsAdmin(c) {
		return jsonError(c, http.StatusUnauthorized, "Authentication required")
	}

	filename := c.Param("filename")
	if filename == "" || filename != filepath.Base(filename) {
		return jsonError(c, http.StatusBadRequest, "Invalid filename")
	}

	// File may already be gone; the metadata row is what matters.
	_ = os.Remove(filepath.Join(a.Config.StaticDir, uploadsSubdir, filename))

	if err := a.Store.DeleteImage(filename); err != nil {
		c.Logger().Errorf("delete image %s: %v", filename, err)
		return jsonError(c, http.StatusInternalServerError, "Failed to delete image")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
