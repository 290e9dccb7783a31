package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"hvac-load-api/internal/models"
)

const predictionFailedMessage = "Prediction failed"

// PredictRequest represents the prediction request body
type PredictRequest struct {
	City               *string             `json:"city" validate:"required,min=1" example:"Singapore"`
	Date               *string             `json:"date" validate:"required,datetime=2006-01-02" example:"2024-03-05"`
	StartHour          *int                `json:"start_hour" validate:"required,min=0,max=22" example:"14"`
	HotelOccupancy     *float64            `json:"hotel_occupancy" validate:"required" example:"85"`
	OperationalMetrics map[string]*float64 `json:"operational_metrics" validate:"required"`
}

// PredictResponse represents a successful prediction
type PredictResponse struct {
	Predictions []models.PredictionResult `json:"predictions"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error" example:"Missing required parameter: city"`
	Kind  string `json:"kind,omitempty" example:"weather_unavailable"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// parsePredictRequest decodes and validates body. Every failure is an
// *models.InvalidRequestError naming the offending field.
func parsePredictRequest(body []byte) (models.PredictionRequest, error) {
	var dto PredictRequest
	if err := json.Unmarshal(body, &dto); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			field := strings.SplitN(typeErr.Field, ".", 2)[0]
			return models.PredictionRequest{}, &models.InvalidRequestError{
				Field:  field,
				Reason: fmt.Sprintf("Invalid type for parameter: %s", field),
			}
		}
		return models.PredictionRequest{}, &models.InvalidRequestError{
			Field:  "body",
			Reason: "Request body must be a JSON object",
		}
	}

	if err := validate.Struct(&dto); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			fe := validationErrors[0]
			return models.PredictionRequest{}, &models.InvalidRequestError{
				Field:  fe.Field(),
				Reason: validationMessage(fe),
			}
		}
		return models.PredictionRequest{}, &models.InvalidRequestError{Field: "body", Reason: err.Error()}
	}

	city := strings.TrimSpace(*dto.City)
	if city == "" {
		return models.PredictionRequest{}, &models.InvalidRequestError{
			Field:  "city",
			Reason: "Missing required parameter: city",
		}
	}

	metrics := make(map[string]float64, len(dto.OperationalMetrics))
	for name, v := range dto.OperationalMetrics {
		if v == nil {
			return models.PredictionRequest{}, &models.InvalidRequestError{
				Field:  "operational_metrics",
				Reason: "Invalid type for parameter: operational_metrics",
			}
		}
		metrics[name] = *v
	}

	date, err := time.Parse(models.DateLayout, *dto.Date)
	if err != nil {
		return models.PredictionRequest{}, &models.InvalidRequestError{
			Field:  "date",
			Reason: "date must be a calendar date in YYYY-MM-DD format",
		}
	}

	return models.PredictionRequest{
		City:               city,
		Date:               date,
		StartHour:          *dto.StartHour,
		HotelOccupancy:     *dto.HotelOccupancy,
		OperationalMetrics: metrics,
	}, nil
}

func validationMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("Missing required parameter: %s", field)
	case "datetime":
		return fmt.Sprintf("%s must be a calendar date in YYYY-MM-DD format", field)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Missing required parameter: %s", field)
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation: %s", field, fe.Tag())
	}
}

// PredictLoad godoc
// @Summary Predict chiller plant load
// @Description Fetches the current weather for the city, combines it with the operational metrics and hotel occupancy, and predicts the chiller plant load for the hour starting at start_hour
// @Tags Prediction
// @Accept json
// @Produce json
// @Param request body PredictRequest true "Prediction inputs"
// @Success 200 {object} PredictResponse "Successful response"
// @Failure 400 {object} ErrorResponse "Bad request - invalid parameters"
// @Failure 500 {object} ErrorResponse "Prediction failed"
// @Router /predict [post]
// @Example {curl} Example usage:
//
//	curl -X POST "http://localhost:8080/predict" -H "Content-Type: application/json" \
//	  -d '{"city":"Singapore","date":"2024-03-05","start_hour":14,"hotel_occupancy":85,"operational_metrics":{"CHWS_Setpoint":6.5}}'
func (r *routes) handlePredict(c *fiber.Ctx) error {
	r.l.Debug("received prediction request", map[string]any{
		"body": string(c.Body()),
	})

	req, err := parsePredictRequest(c.Body())
	if err != nil {
		r.service.RecordInvalid()
		r.l.Warning("invalid prediction request", map[string]any{"err": err.Error()})

		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: err.Error(),
		})
	}

	predictions, err := r.service.Predict(c.UserContext(), req)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: predictionFailedMessage,
			Kind:  models.ErrorKind(err),
		})
	}

	return c.JSON(PredictResponse{Predictions: predictions})
}

// GetModelInfo godoc
// @Summary Describe the loaded model
// @Description Returns the model type, its feature order, output names and the operational metrics a request must supply
// @Tags Model
// @Produce json
// @Success 200 {object} predictor.Info "Loaded model"
// @Router /model [get]
func (r *routes) handleModelInfo(c *fiber.Ctx) error {
	return c.JSON(r.model)
}
