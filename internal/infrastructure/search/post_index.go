package search

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-user-post-api/internal/domain/entity"
)

const requestTimeout = 3 * time.Second

// NewClient creates an Elasticsearch client with sane defaults and optional basic auth.
func NewClient(addrs []string, username, password string) (*elasticsearch.Client, error) {
	return elasticsearch.NewClient(elasticsearch.Config{
		Addresses: addrs,
		Username:  username,
		Password:  password,
		Transport: &http.Transport{
			MaxIdleConnsPerHost:   10,
			ResponseHeaderTimeout: 5 * time.Second,
			TLSClientConfig:       &tls.Config{MinVersion: tls.VersionTLS12},
			DialContext:           (&net.Dialer{Timeout: 5 * time.Second}).DialContext,
		},
	})
}

// PostIndex keeps a search projection of posts in one Elasticsearch index.
type PostIndex struct {
	ES     *elasticsearch.Client
	Index  string
	Logger *logrus.Logger
}

func NewPostIndex(es *elasticsearch.Client, index string, logger *logrus.Logger) *PostIndex {
	return &PostIndex{ES: es, Index: index, Logger: logger}
}

type postDoc struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (i *PostIndex) Put(ctx context.Context, p entity.Post) error {
	b, err := json.Marshal(postDoc{ID: p.ID, Content: p.Content, UserID: p.UserID, CreatedAt: p.CreatedAt})
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: i.Index, DocumentID: strconv.FormatInt(p.ID, 10), Body: bytes.NewReader(b), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, i.ES)
	if err != nil {
		return fmt.Errorf("es index post %d: %w", p.ID, err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es index post %d: %s", p.ID, res.Status())
	}
	return nil
}

// Remove deletes the document for id. A document that is already gone is not an error.
func (i *PostIndex) Remove(ctx context.Context, id int64) error {
	req := esapi.DeleteRequest{Index: i.Index, DocumentID: strconv.FormatInt(id, 10)}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, i.ES)
	if err != nil {
		return fmt.Errorf("es delete post %d: %w", id, err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("es delete post %d: %s", id, res.Status())
	}
	return nil
}

// Search runs a match query on content and returns posts in relevance order.
func (i *PostIndex) Search(ctx context.Context, q string, size int) ([]entity.Post, error) {
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"match": map[string]any{
				"content": q,
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := i.ES.Search(i.ES.Search.WithContext(c), i.ES.Search.WithIndex(i.Index), i.ES.Search.WithBody(bytes.NewReader(b)))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	// The index only exists once the indexer has stored a first post.
	if res.StatusCode == http.StatusNotFound {
		return []entity.Post{}, nil
	}
	if res.IsError() {
		if i.Logger != nil {
			i.Logger.WithField("status", res.Status()).Warn("es search response error")
		}
		return nil, fmt.Errorf("es search: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source postDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]entity.Post, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		d := h.Source
		out = append(out, entity.Post{ID: d.ID, Content: d.Content, UserID: d.UserID, CreatedAt: d.CreatedAt})
	}
	return out, nil
}
