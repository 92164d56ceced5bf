package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// IBGEService queries the Brazilian agricultural statistics service: the
// SIDRA municipal production table for yields and the localities API for
// municipality codes. Every method returns a zero value instead of an error
// when the service is unreachable or the response is unusable; the caller
// applies the configured fallback.
type IBGEService struct {
	client        *resty.Client
	baseURL       string
	localitiesURL string
	logger        *zap.Logger
}

// ProductivityRow is one processed row of the SIDRA response.
type ProductivityRow struct {
	Territory string  `json:"territory"`
	Year      string  `json:"year"`
	Variable  string  `json:"variable"`
	Crop      string  `json:"crop"`
	Value     float64 `json:"value"`
}

func NewIBGEService(baseURL, localitiesURL string, logger *zap.Logger) *IBGEService {
	client := resty.New().
		SetTimeout(15 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		SetHeader("Accept", "application/json")

	return &IBGEService{
		client:        client,
		baseURL:       baseURL,
		localitiesURL: localitiesURL,
		logger:        logger,
	}
}

// ProductivityData fetches production and yield values for a crop from the
// PAM municipal production table. A nil result means no usable data.
func (s *IBGEService) ProductivityData(ctx context.Context, cropCode, municipalityCode string, year int) []ProductivityRow {
	const tableID = "1612"
	locationFilter := "n6/all"
	if municipalityCode != "" {
		locationFilter = "n6/" + municipalityCode
	}
	url := fmt.Sprintf("%s/values/t/%s/%s/p/%d/v/214,216/c48/%s", s.baseURL, tableID, locationFilter, year, cropCode)

	resp, err := s.client.R().SetContext(ctx).Get(url)
	if err != nil || resp.IsError() {
		s.logger.Warn("IBGE productivity lookup failed", zap.String("url", url), zap.Error(err))
		return nil
	}

	var raw [][]any
	if err := json.Unmarshal(resp.Body(), &raw); err != nil || len(raw) == 0 {
		s.logger.Warn("IBGE productivity response unusable", zap.Error(err))
		return nil
	}

	rows := make([]ProductivityRow, 0, len(raw))
	for _, row := range raw {
		if len(row) < 6 {
			continue
		}
		rows = append(rows, ProductivityRow{
			Territory: asString(row[1]),
			Year:      asString(row[2]),
			Variable:  asString(row[3]),
			Crop:      asString(row[4]),
			Value:     asFloat(row[5]),
		})
	}
	return rows
}

// MunicipalityCode resolves a municipality name within a state to its code.
// Empty string means it could not be resolved.
func (s *IBGEService) MunicipalityCode(ctx context.Context, municipality, state string) string {
	url := fmt.Sprintf("%s/api/v1/localidades/estados/%s/municipios", s.localitiesURL, state)

	resp, err := s.client.R().SetContext(ctx).Get(url)
	if err != nil || resp.IsError() {
		s.logger.Warn("IBGE municipality lookup failed", zap.String("state", state), zap.Error(err))
		return ""
	}

	var municipalities []struct {
		ID   int    `json:"id"`
		Nome string `json:"nome"`
	}
	if err := json.Unmarshal(resp.Body(), &municipalities); err != nil {
		s.logger.Warn("IBGE municipality response unusable", zap.Error(err))
		return ""
	}

	needle := strings.ToLower(municipality)
	for _, m := range municipalities {
		if strings.Contains(strings.ToLower(m.Nome), needle) {
			return strconv.Itoa(m.ID)
		}
	}
	return ""
}

func asString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func asFloat(v any) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case string:
		f, _ := strconv.ParseFloat(x, 64)
		return f
	default:
		return 0
	}
}
