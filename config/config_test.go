package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateNewConfig_ImageKit(t *testing.T) {
	t.Setenv("IMAGEKIT_PRIVATE_KEY", "private_key")
	t.Setenv("IMAGEKIT_URL_ENDPOINT", "https://ik.imagekit.io/shop")

	conf, err := CreateNewConfig()
	require.NoError(t, err)

	assert.Equal(t, ImageKitConfig{
		PrivateKey:  "private_key",
		URLEndpoint: "https://ik.imagekit.io/shop",
		Folder:      "/Ecommerce",
		UploadURL:   "https://upload.imagekit.io/api/v1/files/upload",
		APIURL:      "https://api.imagekit.io/v1",
	}, conf.ImageKitConfig)
}

func TestCreateNewConfig_Defaults(t *testing.T) {
	conf, err := CreateNewConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", conf.ServicePort)
	assert.Equal(t, time.Hour, conf.JWTConfig.TTL)
	assert.Equal(t, time.Hour, conf.RedisConfig.ViewCacheTTL)
	assert.Equal(t, "storefront.revalidate", conf.KafkaConfig.BrokerTopic)
	assert.False(t, conf.IsProduction())
}
