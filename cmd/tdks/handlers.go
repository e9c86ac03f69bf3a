package main

import (
	"context"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	sozluk "github.com/clydeofficial/tdk-sozluk"
	"github.com/clydeofficial/tdk-sozluk/pkg/dicterr"
	"github.com/clydeofficial/tdk-sozluk/pkg/validate"
)

type ResponseStatus int

const (
	ResponseOK ResponseStatus = iota
	ResponseNotFound
	ResponseBadRequest
	ResponseError
)

type ResponseSearch struct {
	Dictionary string          `json:"dictionary,omitempty"`
	Result     interface{}     `json:"result,omitempty"`
	Results    []sozluk.Result `json:"results,omitempty"`
	Error      error           `json:"error,omitempty"`
	Status     ResponseStatus  `json:"status"`
}

type ResponseDictionary struct {
	Name     string `json:"name"`
	Endpoint string `json:"endpoint"`
}

const (
	paramDictionary   = "dict"
	paramTerm         = "q"
	paramCompounds    = "compounds"
	paramProverbs     = "proverbs"
	paramSignLanguage = "signs"
	paramDebug        = "debug"
)

var (
	optionParams = []string{paramCompounds, paramProverbs, paramSignLanguage, paramDebug}
	searchParams = append([]string{paramDictionary, paramTerm}, optionParams...)
	allParams    = append([]string{paramTerm}, optionParams...)
)

func (s *Server) handleSearch() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.NotFound(w, r)
			return
		}
		query := r.URL.Query()
		opts, err := searchOptions(query, searchParams)
		if err != nil {
			s.respondError(r.Context(), w, &ResponseSearch{}, err)
			return
		}
		endpoint := query.Get(paramDictionary)
		dictionary, ok := s.client.Lookup(endpoint)
		if !ok {
			err := dicterr.NewValidation(paramDictionary, "unknown dictionary %q. Allowed: %s",
				endpoint, strings.Join(sozluk.Endpoints(), ", "))
			s.respondError(r.Context(), w, &ResponseSearch{}, err)
			return
		}

		response := ResponseSearch{Dictionary: dictionary.Name()}
		result, err := dictionary.Search(r.Context(), validate.Sanitize(query.Get(paramTerm)), opts...)
		if err != nil {
			s.respondError(r.Context(), w, &response, err)
			return
		}
		response.Result = result
		s.respondJSON(r.Context(), w, &response, http.StatusOK)
	}
}

func (s *Server) handleAll() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.NotFound(w, r)
			return
		}
		query := r.URL.Query()
		opts, err := searchOptions(query, allParams)
		if err != nil {
			s.respondError(r.Context(), w, &ResponseSearch{}, err)
			return
		}
		results, err := s.client.SearchAll(r.Context(), validate.Sanitize(query.Get(paramTerm)), opts...)
		if err != nil {
			s.respondError(r.Context(), w, &ResponseSearch{}, err)
			return
		}
		s.respondJSON(r.Context(), w, &ResponseSearch{Results: results}, http.StatusOK)
	}
}

func (s *Server) handleDictionaries() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.NotFound(w, r)
			return
		}
		var dictionaries []ResponseDictionary
		for _, d := range sozluk.Catalog() {
			dictionaries = append(dictionaries, ResponseDictionary{Name: d.Name(), Endpoint: d.Endpoint()})
		}
		s.respondJSON(r.Context(), w, dictionaries, http.StatusOK)
	}
}

// respondError fills response from err and answers with the HTTP status
// matching its code. Failures other than bad input or a miss are logged.
func (s *Server) respondError(ctx context.Context, w http.ResponseWriter, response *ResponseSearch, err error) {
	response.Error = err
	status := http.StatusBadGateway
	switch dicterr.CodeOf(err) {
	case dicterr.CodeValidation:
		response.Status, status = ResponseBadRequest, http.StatusBadRequest
	case dicterr.CodeNotFound:
		response.Status, status = ResponseNotFound, http.StatusNotFound
	default:
		response.Status = ResponseError
		s.logger.Error("dictionary lookup failed",
			zap.Error(err),
			zap.String("request_id", requestID(ctx)),
			zap.String("dictionary", response.Dictionary),
		)
	}
	s.respondJSON(ctx, w, response, status)
}

// searchOptions checks that query only holds allowed keys and turns the
// boolean switches into lookup options.
func searchOptions(query map[string][]string, allowed []string) ([]sozluk.Option, error) {
	keys := make([]string, 0, len(query))
	for key := range query {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	if err := validate.Keys(keys, allowed); err != nil {
		return nil, err
	}

	switches := []struct {
		param  string
		option func(bool) sozluk.Option
	}{
		{paramCompounds, sozluk.WithCompounds},
		{paramProverbs, sozluk.WithProverbs},
		{paramSignLanguage, sozluk.WithSignLanguage},
		{paramDebug, sozluk.WithDebug},
	}
	var opts []sozluk.Option
	for _, sw := range switches {
		values, ok := query[sw.param]
		if !ok || len(values) == 0 {
			continue
		}
		enabled, err := strconv.ParseBool(values[0])
		if err != nil {
			return nil, dicterr.NewValidation(sw.param, "%s must be true or false", sw.param)
		}
		opts = append(opts, sw.option(enabled))
	}
	return opts, nil
}
