package handler

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/iliyamo/backoffice/internal/model"
	"github.com/iliyamo/backoffice/internal/paging"
	"github.com/iliyamo/backoffice/internal/service"
)

// requestTimeout bounds the database work of a single request.
const requestTimeout = 5 * time.Second

var downloadsServed = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "backoffice_downloads_total",
	Help: "Files served by download endpoints, by entity kind.",
}, []string{"kind"})

func withTimeout(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), requestTimeout)
}

// parseID reads the :id path parameter.
func parseID(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q", c.Param("id"))
	}
	return id, nil
}

// queryBool reports whether a query flag is set to a true value.
func queryBool(c echo.Context, name string) bool {
	b, _ := strconv.ParseBool(c.QueryParam(name))
	return b
}

// items wraps a list the way every list endpoint returns it.
func items[T any](list []T) echo.Map {
	if list == nil {
		list = []T{}
	}
	return echo.Map{"items": list}
}

// loadView restores a grid from the request page and filter, loads it and
// falls back to the last page when the requested one is past the end.
func loadView[T any](ctx context.Context, q paging.QueryFunc[T], pr paging.PageRequest, filter string) (paging.View[T], error) {
	g := paging.NewGrid(q, pr).WithFilter(filter)
	if err := g.Refresh(ctx); err != nil {
		return paging.View[T]{}, err
	}
	if v := g.View(); v.TotalPages > 0 && v.Page >= v.TotalPages {
		if err := g.Last(ctx); err != nil {
			return paging.View[T]{}, err
		}
	}
	return g.View(), nil
}

// upload is a multipart file read fully into memory.
type upload struct {
	Name        string
	ContentType string
	Data        []byte
}

// readUpload reads the multipart field into memory, refusing files larger
// than max bytes.
// formMetadata decodes the JSON object in form field name.
func formMetadata(c echo.Context, name string) (model.Metadata, error) {
	m, err := model.DecodeMetadata(c.FormValue(name))
	if err != nil {
		return nil, &service.ValidationError{Fields: map[string]string{name: "I metadati devono essere un oggetto JSON di stringhe"}}
	}
	return m, nil
}

func readUpload(c echo.Context, field string, max int64) (*upload, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "missing multipart file field "+field)
	}
	if max > 0 && fh.Size > max {
		return nil, echo.NewHTTPError(http.StatusRequestEntityTooLarge, "file exceeds the upload limit")
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r := io.Reader(f)
	if max > 0 {
		r = io.LimitReader(f, max+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if max > 0 && int64(len(data)) > max {
		return nil, echo.NewHTTPError(http.StatusRequestEntityTooLarge, "file exceeds the upload limit")
	}
	return &upload{Name: fh.Filename, ContentType: fh.Header.Get(echo.HeaderContentType), Data: data}, nil
}

// contentDisposition builds an attachment header.  The quoted filename is
// kept to printable ASCII; names outside it also get an RFC 5987
// filename* parameter.
func contentDisposition(name string) string {
	ascii := strings.Map(func(r rune) rune {
		switch {
		case r == '"' || r == '\\':
			return '_'
		case r > unicode.MaxASCII || !unicode.IsPrint(r):
			return '_'
		}
		return r
	}, name)
	if ascii == "" {
		ascii = "download"
	}
	v := `attachment; filename="` + ascii + `"`
	if ascii != name {
		v += "; filename*=UTF-8''" + url.PathEscape(name)
	}
	return v
}

// sendFile writes data as an attachment.  An unparsable contentType is
// served as application/octet-stream.
func sendFile(c echo.Context, kind, name, contentType string, data []byte) error {
	mt := echo.MIMEOctetStream
	if contentType != "" {
		if parsed, params, err := mime.ParseMediaType(contentType); err == nil {
			if f := mime.FormatMediaType(parsed, params); f != "" {
				mt = f
			}
		}
	}
	h := c.Response().Header()
	h.Set(echo.HeaderContentDisposition, contentDisposition(name))
	h.Set(echo.HeaderContentLength, strconv.Itoa(len(data)))
	downloadsServed.WithLabelValues(kind).Inc()
	return c.Blob(http.StatusOK, mt, data)
}
