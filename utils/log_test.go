//nolint:dupl
package utils_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/NethermindEth/makimono/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

var levelStrings = map[*utils.LogLevel]string{
	utils.NewLogLevel(utils.DEBUG): "debug",
	utils.NewLogLevel(utils.INFO):  "info",
	utils.NewLogLevel(utils.WARN):  "warn",
	utils.NewLogLevel(utils.ERROR): "error",
	utils.NewLogLevel(utils.FATAL): "fatal",
}

func TestLogLevelString(t *testing.T) {
	for level, str := range levelStrings {
		t.Run("level "+str, func(t *testing.T) {
			assert.Equal(t, str, level.String())
		})
	}
}

func TestLogLevelSet(t *testing.T) {
	for level, str := range levelStrings {
		t.Run("level "+str, func(t *testing.T) {
			l := utils.NewLogLevel(utils.INFO)
			require.NoError(t, l.Set(str))
			assert.Equal(t, level.Level(), l.Level())
		})
		uppercase := strings.ToUpper(str)
		t.Run("level "+uppercase, func(t *testing.T) {
			l := utils.NewLogLevel(utils.INFO)
			require.NoError(t, l.Set(uppercase))
			assert.Equal(t, level.Level(), l.Level())
		})
	}

	t.Run("unknown log level", func(t *testing.T) {
		l := new(utils.LogLevel)
		require.ErrorIs(t, l.Set("blah"), utils.ErrUnknownLogLevel)
	})

	t.Run("zero value defaults to info", func(t *testing.T) {
		l := new(utils.LogLevel)
		assert.Equal(t, utils.INFO, l.Level())
		require.NoError(t, l.Set("warn"))
		assert.Equal(t, utils.WARN, l.Level())
	})
}

func TestLogLevelUnmarshalText(t *testing.T) {
	for level, str := range levelStrings {
		t.Run("level "+str, func(t *testing.T) {
			l := utils.NewLogLevel(utils.INFO)
			require.NoError(t, l.UnmarshalText([]byte(str)))
			assert.Equal(t, level.Level(), l.Level())
		})
	}

	t.Run("unknown log level", func(t *testing.T) {
		l := new(utils.LogLevel)
		require.ErrorIs(t, l.UnmarshalText([]byte("blah")), utils.ErrUnknownLogLevel)
	})
}

func TestLogLevelMarshalJSON(t *testing.T) {
	for level, str := range levelStrings {
		t.Run("level "+str, func(t *testing.T) {
			lb, err := json.Marshal(&level)
			require.NoError(t, err)

			expectedStr := `"` + str + `"`
			assert.Equal(t, expectedStr, string(lb))
		})
	}
}

func TestLogLevelType(t *testing.T) {
	assert.Equal(t, "LogLevel", new(utils.LogLevel).Type())
}

func TestMarshalYAML(t *testing.T) {
	for level, str := range levelStrings {
		t.Run("level "+str, func(t *testing.T) {
			data, err := yaml.Marshal(*level)
			require.NoError(t, err)
			assert.Equal(t, str+"\n", string(data))
		})
	}
}

func TestZapWithColour(t *testing.T) {
	for level, str := range levelStrings {
		t.Run("level: "+str, func(t *testing.T) {
			_, err := utils.NewZapLogger(level, true)
			assert.NoError(t, err)
		})
	}
}

func TestZapWithoutColour(t *testing.T) {
	for level, str := range levelStrings {
		t.Run("level: "+str, func(t *testing.T) {
			_, err := utils.NewZapLogger(level, false)
			assert.NoError(t, err)
		})
	}
}

func TestLevelChangeAppliesToLogger(t *testing.T) {
	logLevel := utils.NewLogLevel(utils.INFO)

	var buf bytes.Buffer
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(&buf),
		logLevel,
	)
	logger := utils.NewZapLoggerWithCore(core)

	logger.Debugw("hidden message")
	assert.NotContains(t, buf.String(), "hidden message")

	require.NoError(t, logLevel.Set("debug"))
	logger.Debugw("visible message", "key", "value")
	assert.Contains(t, buf.String(), "visible message")
	assert.Contains(t, buf.String(), "value")
}

func TestHTTPLogSettings(t *testing.T) {
	logLevel := utils.NewLogLevel(utils.INFO)
	ctx := context.Background()

	serve := func(t *testing.T, method, target string) *httptest.ResponseRecorder {
		t.Helper()
		req, err := http.NewRequestWithContext(ctx, method, target, http.NoBody)
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			utils.HTTPLogSettings(w, r, logLevel)
		})
		handler.ServeHTTP(rr, req)
		return rr
	}

	t.Run("GET current log level", func(t *testing.T) {
		rr := serve(t, http.MethodGet, "/log/level")
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "info\n", rr.Body.String())
	})

	t.Run("PUT update log level", func(t *testing.T) {
		rr := serve(t, http.MethodPut, "/log/level?level=debug")
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "Replaced log level with 'debug' successfully\n", rr.Body.String())
		assert.Equal(t, utils.DEBUG, logLevel.Level())
	})

	t.Run("PUT update log level with missing parameter", func(t *testing.T) {
		rr := serve(t, http.MethodPut, "/log/level")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "missing level query parameter\n", rr.Body.String())
	})

	t.Run("PUT update log level with invalid level", func(t *testing.T) {
		rr := serve(t, http.MethodPut, "/log/level?level=invalid")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, fmt.Sprint(utils.ErrUnknownLogLevel)+"\n", rr.Body.String())
	})

	t.Run("Method not allowed", func(t *testing.T) {
		rr := serve(t, http.MethodPost, "/log/level")
		assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
		assert.Equal(t, "Method not allowed\n", rr.Body.String())
	})
}
