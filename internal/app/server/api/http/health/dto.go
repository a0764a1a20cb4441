package health

type Input struct{}

type Output struct {
	Body HealthResponse
}

type HealthResponse struct {
	Status   string `json:"status" example:"OK" doc:"Health status of the service"`
	Database string `json:"database" example:"OK" doc:"Result of the storage ping"`
}
