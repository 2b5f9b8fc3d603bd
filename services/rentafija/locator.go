package rentafija

import (
	"context"
	"errors"
	"strings"
	"time"

	"commander-backend/lib/htmlutil"
	"commander-backend/lib/moneyfmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var errDocumentNotFound = errors.New("No se encontraron los datos del PDF: pdfUrl o pdfDate.")

// documentRef points at the exact pdf version currently published: the
// resolved document url doubles as the change-detection fingerprint.
type documentRef struct {
	PdfUrl      string
	ListingDate time.Time
}

// the listing description reads like "Listado de especies. 13/06/2025.",
// the second dot-separated segment carries the publication date
func listingDate(description string) *time.Time {
	parts := strings.Split(description, ".")
	if len(parts) < 2 || !strings.Contains(parts[1], "/") {
		return nil
	}
	return moneyfmt.ParseListingDate(strings.TrimSpace(parts[1]))
}

// resolveDocument walks from the listing page to the pdf viewer page and
// reads the embedded document's source url. Any missing step is a hard
// failure for the attempt, not a skip.
func (s Service) resolveDocument(ctx context.Context) (documentRef, error) {
	ctx, span := tracer.Start(ctx, "resolveDocument")
	defer span.End()

	listing, err := s.browser.Document(ctx, s.config.DataUrl)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return documentRef{}, err
	}

	link := listing.Find("div.contenidoListado a").First()
	href, ok := link.Attr("href")
	if !ok || href == "" {
		return documentRef{}, errDocumentNotFound
	}

	description := htmlutil.SelectionText(link.Find("div.descripcion"))
	date := listingDate(description)
	if date == nil {
		return documentRef{}, errDocumentNotFound
	}

	viewerUrl := s.config.DataOriginUrl + href
	span.SetAttributes(attribute.String("viewer_url", viewerUrl))

	viewer, err := s.browser.Document(ctx, viewerUrl)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return documentRef{}, err
	}

	pdfUrl, ok := viewer.Find("div.pdfVisualizador object").First().Attr("data")
	if !ok || pdfUrl == "" {
		return documentRef{}, errDocumentNotFound
	}

	span.SetAttributes(attribute.String("pdf_url", pdfUrl))
	return documentRef{
		PdfUrl:      pdfUrl,
		ListingDate: *date,
	}, nil
}

// ShouldProcess is the change detector: it reports false only when the
// candidate fingerprint matches the last persisted one, a missing prior
// fingerprint always processes.
func ShouldProcess(fingerprint string, lastFingerprint *string) bool {
	if lastFingerprint == nil || *lastFingerprint == "" {
		return true
	}
	return *lastFingerprint != fingerprint
}
