package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/jlaffaye/ftp"

	"github.com/lox/bcwildfires/internal/httputil"
)

// ErrUnsupportedSource is returned for dataset locations with an unknown scheme.
var ErrUnsupportedSource = errors.New("unsupported source")

// Source is a location a GeoJSON document can be read from.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
	String() string
}

// ParseSource maps a location to a Source. Plain paths and file:// URIs read
// from disk, http(s):// uses client, and ftp:// logs in anonymously unless
// the URI carries credentials. A nil client gets one with no timeout.
func ParseSource(location string, client *http.Client) (Source, error) {
	if location == "" {
		return nil, fmt.Errorf("%w: empty location", ErrUnsupportedSource)
	}
	if !strings.Contains(location, "://") {
		return fileSource{path: location}, nil
	}

	u, err := url.Parse(location)
	if err != nil {
		return nil, fmt.Errorf("parse source %q: %w", location, err)
	}

	switch u.Scheme {
	case "file":
		return fileSource{path: u.Path}, nil
	case "http", "https":
		if client == nil {
			client = httputil.NewClient(0)
		}
		return httpSource{client: client, url: u.String()}, nil
	case "ftp":
		return newFTPSource(u), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedSource, u.Scheme)
	}
}

type fileSource struct {
	path string
}

func (s fileSource) Open(ctx context.Context) (io.ReadCloser, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	return f, nil
}

func (s fileSource) String() string { return s.path }

type httpSource struct {
	client *http.Client
	url    string
}

func (s httpSource) Open(ctx context.Context) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/geo+json, application/json")
	req.Header.Set("User-Agent", "bcwildfires/1.0")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}
	return resp.Body, nil
}

func (s httpSource) String() string { return s.url }

type ftpSource struct {
	addr string
	user string
	pass string
	path string
}

func newFTPSource(u *url.URL) ftpSource {
	s := ftpSource{
		addr: u.Host,
		user: "anonymous",
		pass: "anonymous",
		path: u.Path,
	}
	if u.Port() == "" {
		s.addr = u.Hostname() + ":21"
	}
	if u.User != nil {
		s.user = u.User.Username()
		if p, ok := u.User.Password(); ok {
			s.pass = p
		}
	}
	return s
}

func (s ftpSource) Open(ctx context.Context) (io.ReadCloser, error) {
	conn, err := ftp.Dial(s.addr, ftp.DialWithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("ftp dial: %w", err)
	}

	if err := conn.Login(s.user, s.pass); err != nil {
		conn.Quit()
		return nil, fmt.Errorf("ftp login: %w", err)
	}

	resp, err := conn.Retr(s.path)
	if err != nil {
		conn.Quit()
		return nil, fmt.Errorf("ftp retr: %w", err)
	}
	return &ftpBody{resp: resp, conn: conn}, nil
}

func (s ftpSource) String() string { return "ftp://" + s.addr + s.path }

// ftpBody closes the data connection before quitting the control connection.
type ftpBody struct {
	resp *ftp.Response
	conn *ftp.ServerConn
}

func (b *ftpBody) Read(p []byte) (int, error) { return b.resp.Read(p) }

func (b *ftpBody) Close() error {
	err := b.resp.Close()
	if qerr := b.conn.Quit(); err == nil {
		err = qerr
	}
	return err
}
