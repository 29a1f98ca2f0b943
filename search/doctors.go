// Package search keeps an Elasticsearch index of doctors for the public search.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/models"
	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/repository"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

const (
	DoctorsIndex = "doctors"
	maxResults   = 200
)

// doctorDocument is the indexed shape of a doctor.
type doctorDocument struct {
	Name           string   `json:"name"`
	Specialization string   `json:"specialization"`
	City           string   `json:"city"`
	ClinicName     string   `json:"clinicName"`
	CenterID       uint     `json:"centerId"`
	Status         string   `json:"status"`
	Shifts         []string `json:"shifts"`
}

type DoctorIndex struct {
	client *elasticsearch.Client
	index  string
}

func NewDoctorIndex(url string) (*DoctorIndex, error) {
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{url},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	res, err := es.Ping()
	if err != nil {
		return nil, fmt.Errorf("failed to ping Elasticsearch: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("Elasticsearch ping error: %s", res.Status())
	}

	return &DoctorIndex{client: es, index: DoctorsIndex}, nil
}

func (d *DoctorIndex) IndexDoctor(ctx context.Context, doctor models.Doctor) error {
	body, err := json.Marshal(doctorDocument{
		Name:           doctor.Name,
		Specialization: doctor.Specialization,
		City:           doctor.City,
		ClinicName:     doctor.ClinicName,
		CenterID:       doctor.ClinicalCenterID,
		Status:         doctor.Status,
		Shifts:         doctor.ShiftTimes(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal doctor: %w", err)
	}

	req := esapi.IndexRequest{
		Index:      d.index,
		DocumentID: strconv.FormatUint(uint64(doctor.ID), 10),
		Body:       bytes.NewReader(body),
		Refresh:    "true",
	}
	res, err := req.Do(ctx, d.client)
	if err != nil {
		return fmt.Errorf("failed to index doctor: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("Elasticsearch error: %s", res.String())
	}
	return nil
}

func (d *DoctorIndex) DeleteDoctor(ctx context.Context, doctorID uint) error {
	req := esapi.DeleteRequest{
		Index:      d.index,
		DocumentID: strconv.FormatUint(uint64(doctorID), 10),
		Refresh:    "true",
	}
	res, err := req.Do(ctx, d.client)
	if err != nil {
		return fmt.Errorf("failed to delete doctor: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("Elasticsearch error: %s", res.String())
	}
	return nil
}

// SearchDoctors returns matching doctor ids ordered by relevance.
func (d *DoctorIndex) SearchDoctors(ctx context.Context, search repository.DoctorSearch) ([]uint, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(buildQuery(search)); err != nil {
		return nil, fmt.Errorf("failed to encode query: %w", err)
	}

	res, err := d.client.Search(
		d.client.Search.WithContext(ctx),
		d.client.Search.WithIndex(d.index),
		d.client.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("Elasticsearch error: %s", res.String())
	}

	var body struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	ids := make([]uint, 0, len(body.Hits.Hits))
	for _, hit := range body.Hits.Hits {
		id, err := strconv.ParseUint(hit.ID, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}

// buildQuery matches names and specialisations loosely and places by prefix.
func buildQuery(search repository.DoctorSearch) map[string]interface{} {
	var must []map[string]interface{}
	if v := strings.TrimSpace(search.Name); v != "" {
		must = append(must, fuzzy("name", v))
	}
	if v := strings.TrimSpace(search.Specialization); v != "" {
		must = append(must, fuzzy("specialization", v))
	}
	if v := strings.TrimSpace(search.City); v != "" {
		must = append(must, prefix("city", v))
	}
	if v := strings.TrimSpace(search.Clinic); v != "" {
		must = append(must, prefix("clinicName", v))
	}

	return map[string]interface{}{
		"size":    maxResults,
		"_source": false,
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": must,
				"filter": []map[string]interface{}{
					{"term": map[string]interface{}{"status.keyword": models.DoctorAvailable}},
				},
			},
		},
	}
}

func fuzzy(field, value string) map[string]interface{} {
	return map[string]interface{}{
		"match": map[string]interface{}{
			field: map[string]interface{}{"query": value, "fuzziness": "AUTO"},
		},
	}
}

func prefix(field, value string) map[string]interface{} {
	return map[string]interface{}{
		"match_phrase_prefix": map[string]interface{}{field: value},
	}
}
