package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/models"
	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildQuery(t *testing.T) {
	q := buildQuery(repository.DoctorSearch{Name: " asha ", City: "Koc"})

	raw, err := json.Marshal(q)
	require.NoError(t, err)
	body := string(raw)

	assert.Contains(t, body, `"name":{"fuzziness":"AUTO","query":"asha"}`)
	assert.Contains(t, body, `"match_phrase_prefix":{"city":"Koc"}`)
	assert.Contains(t, body, `"status.keyword":"Available"`)
	assert.NotContains(t, body, "specialization")
}

// fakeElasticsearch answers like a cluster, including the product header the client checks.
func fakeElasticsearch(t *testing.T, handler http.HandlerFunc) *DoctorIndex {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodHead || r.URL.Path == "/" {
			_, _ = io.WriteString(w, `{"version":{"number":"8.17.1"},"tagline":"You Know, for Search"}`)
			return
		}
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	index, err := NewDoctorIndex(srv.URL)
	require.NoError(t, err)
	return index
}

func TestSearchDoctorsParsesIDs(t *testing.T) {
	index := fakeElasticsearch(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/doctors/_search"))
		_, _ = io.WriteString(w, `{"hits":{"hits":[{"_id":"9"},{"_id":"x"},{"_id":"5"}]}}`)
	})

	ids, err := index.SearchDoctors(context.Background(), repository.DoctorSearch{Name: "asha"})
	require.NoError(t, err)
	assert.Equal(t, []uint{9, 5}, ids)
}

func TestIndexDoctor(t *testing.T) {
	var got doctorDocument
	index := fakeElasticsearch(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/doctors/_doc/7", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"result":"created"}`)
	})

	doctor := models.Doctor{Name: "Asha rao", City: "Kochi", ShiftTime1: "9am to 12pm", Status: models.DoctorAvailable}
	doctor.ID = 7
	require.NoError(t, index.IndexDoctor(context.Background(), doctor))

	assert.Equal(t, "Asha rao", got.Name)
	assert.Equal(t, []string{"9am to 12pm"}, got.Shifts)
}

func TestDeleteMissingDoctorIsNotAnError(t *testing.T) {
	index := fakeElasticsearch(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"result":"not_found"}`)
	})

	assert.NoError(t, index.DeleteDoctor(context.Background(), 7))
}
