package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

var (
	ProductOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_product_operations_total",
		Help: "Product mutations by operation and outcome.",
	}, []string{"operation", "outcome"})

	InvalidatedPaths = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_invalidated_paths_total",
		Help: "Rendered view paths invalidated after catalog changes.",
	})

	ImageUploads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_image_uploads_total",
		Help: "Image host uploads by outcome.",
	}, []string{"outcome"})
)

func Outcome(err error) string {
	if err != nil {
		return OutcomeFailure
	}
	return OutcomeSuccess
}
