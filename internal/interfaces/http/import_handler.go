package http

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Varejo-api/internal/application/dto"
	"github.com/jhoicas/Varejo-api/internal/application/purchasing"
	"github.com/jhoicas/Varejo-api/internal/domain/entity"
	"github.com/jhoicas/Varejo-api/internal/infrastructure/nfe"
)

// ImportHandler recibe notas fiscales (XML de NF-e o JSON) y concilia el stock.
type ImportHandler struct {
	uc          *purchasing.ImportInvoiceUseCase
	receipts    purchasing.ReceiptGenerator
	maxXMLBytes int
	log         zerolog.Logger
}

// NewImportHandler construye el handler. receipts puede ser nil (sin salida PDF).
func NewImportHandler(uc *purchasing.ImportInvoiceUseCase, receipts purchasing.ReceiptGenerator, maxXMLBytes int, log zerolog.Logger) *ImportHandler {
	return &ImportHandler{uc: uc, receipts: receipts, maxXMLBytes: maxXMLBytes, log: log}
}

// Import godoc
// @Summary      Importar nota fiscal de compra
// @Description  Acepta multipart (campo "file" con el XML), XML crudo (application/xml, text/xml) o JSON.
// @Description  Con ?format=pdf devuelve el comprovante de entrada en PDF.
// @Tags         purchases
// @Security     Bearer
// @Accept       json,xml,mpfd
// @Produce      json,application/pdf
// @Param        format  query  string  false  "json (default) | pdf"
// @Param        body    body   dto.InvoiceImportRequest  false  "Payload JSON"
// @Success      201  {object}  dto.ImportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      413  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/purchases/import [post]
func (h *ImportHandler) Import(c *fiber.Ctx) error {
	in, status, errBody := h.readInvoice(c)
	if errBody != nil {
		return c.Status(status).JSON(errBody)
	}

	tenantID := GetTenantID(c)
	result, err := h.uc.ProcessInvoiceImport(c.Context(), tenantID, in)
	if err != nil {
		return writeError(c, err)
	}

	if strings.EqualFold(c.Query("format"), "pdf") && h.receipts != nil {
		pdf, err := h.receipts.GenerateImportReceipt(c.Context(), result)
		if err != nil {
			// La importación ya quedó aplicada: se responde en JSON.
			h.log.Warn().Err(err).Str("tenant_id", tenantID).Str("supplier_id", result.SupplierID).
				Msg("comprovante PDF no generado, respuesta en JSON")
			return c.Status(fiber.StatusCreated).JSON(purchasing.ToImportResponse(result))
		}
		c.Set(fiber.HeaderContentType, "application/pdf")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="entrada-%s.pdf"`, result.ImportedAt.Format("20060102-150405")))
		return c.Status(fiber.StatusCreated).Send(pdf)
	}
	return c.Status(fiber.StatusCreated).JSON(purchasing.ToImportResponse(result))
}

func (h *ImportHandler) readInvoice(c *fiber.Ctx) (*entity.InvoiceImport, int, *dto.ErrorResponse) {
	contentType := strings.ToLower(c.Get(fiber.HeaderContentType))
	switch {
	case strings.HasPrefix(contentType, fiber.MIMEMultipartForm):
		fh, err := c.FormFile("file")
		if err != nil {
			return nil, fiber.StatusBadRequest, &dto.ErrorResponse{Code: "VALIDATION", Message: "campo file requerido"}
		}
		if fh.Size > int64(h.maxXMLBytes) {
			return nil, fiber.StatusRequestEntityTooLarge, tooLarge(h.maxXMLBytes)
		}
		f, err := fh.Open()
		if err != nil {
			return nil, fiber.StatusBadRequest, &dto.ErrorResponse{Code: "INVALID_BODY", Message: "no se pudo leer el archivo"}
		}
		defer f.Close()
		return h.parseXML(io.LimitReader(f, int64(h.maxXMLBytes)))

	case strings.HasPrefix(contentType, fiber.MIMEApplicationXML), strings.HasPrefix(contentType, fiber.MIMETextXML):
		body := c.Body()
		if len(body) > h.maxXMLBytes {
			return nil, fiber.StatusRequestEntityTooLarge, tooLarge(h.maxXMLBytes)
		}
		return h.parseXML(bytes.NewReader(body))
	}

	var req dto.InvoiceImportRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, fiber.StatusBadRequest, &dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"}
	}
	return purchasing.FromRequest(req), 0, nil
}

func (h *ImportHandler) parseXML(r io.Reader) (*entity.InvoiceImport, int, *dto.ErrorResponse) {
	in, err := nfe.Parse(r)
	if err != nil {
		status, body := errorStatus(err)
		return nil, status, &body
	}
	return in, 0, nil
}

func tooLarge(max int) *dto.ErrorResponse {
	return &dto.ErrorResponse{Code: "PAYLOAD_TOO_LARGE", Message: fmt.Sprintf("el XML supera %d bytes", max)}
}
