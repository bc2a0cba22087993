package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"

	"velora-storefront/internal/domain"
	"velora-storefront/pkg/apperr"
	"velora-storefront/pkg/utils"

	"github.com/goccy/go-json"
)

func (c *Client) AdminProducts(ctx context.Context) ([]domain.Product, error) {
	env, err := c.doEnvelope(ctx, http.MethodGet, "/api/admin/products", nil)
	if err != nil {
		return nil, err
	}

	var products []domain.Product
	if err := json.Unmarshal(env.Data, &products); err != nil {
		return nil, apperr.New(apperr.CodeRemote, "failed to decode admin products", 0, err)
	}
	return products, nil
}

// ImageUpload pairs a product image with the name it is uploaded under.
type ImageUpload struct {
	Name   string
	Reader io.Reader
}

// CreateProduct builds the admin multipart form: scalar fields, category and
// variant rows as JSON fields, the main image plus any additional images as
// file parts. Images are resized and re-encoded before upload.
func (c *Client) CreateProduct(ctx context.Context, product domain.NewProduct, mainImage ImageUpload, additional []ImageUpload) (domain.Product, error) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	_ = form.WriteField("name", product.Name)
	_ = form.WriteField("description", product.Description)
	_ = form.WriteField("base_price", strconv.FormatFloat(product.BasePrice, 'f', -1, 64))

	categoryIDs, err := json.Marshal(product.CategoryIDs)
	if err != nil {
		return domain.Product{}, apperr.Precondition(fmt.Sprintf("failed to encode category ids: %v", err))
	}
	_ = form.WriteField("category_ids", string(categoryIDs))

	variants, err := json.Marshal(product.Variants)
	if err != nil {
		return domain.Product{}, apperr.Precondition(fmt.Sprintf("failed to encode variants: %v", err))
	}
	_ = form.WriteField("variants", string(variants))

	if err := attachImage(form, "main_image", mainImage); err != nil {
		return domain.Product{}, err
	}
	for _, img := range additional {
		if err := attachImage(form, "additional_images", img); err != nil {
			return domain.Product{}, err
		}
	}

	if err := form.Close(); err != nil {
		return domain.Product{}, apperr.Precondition(fmt.Sprintf("failed to finalize form: %v", err))
	}

	env, err := c.doMultipart(ctx, "/api/admin/products", &buf, form.FormDataContentType())
	if err != nil {
		return domain.Product{}, err
	}

	var created domain.Product
	if err := json.Unmarshal(env.Data, &created); err != nil {
		return domain.Product{}, apperr.New(apperr.CodeRemote, "failed to decode created product", 0, err)
	}
	return created, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	_, err := c.doEnvelope(ctx, http.MethodDelete, "/api/admin/products/"+id, nil)
	return err
}

func attachImage(form *multipart.Writer, field string, img ImageUpload) error {
	processed, contentType, err := utils.ProcessImage(img.Reader, img.Name)
	if err != nil {
		return apperr.Precondition(fmt.Sprintf("failed to process image %s: %v", img.Name, err))
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, img.Name))
	header.Set("Content-Type", contentType)

	part, err := form.CreatePart(header)
	if err != nil {
		return apperr.Precondition(fmt.Sprintf("failed to attach image %s: %v", img.Name, err))
	}
	if _, err := part.Write(processed); err != nil {
		return apperr.Precondition(fmt.Sprintf("failed to write image %s: %v", img.Name, err))
	}
	return nil
}
