package graphite

import (
	"github.com/iulianpascalau/graphite-check/common"
	"github.com/tidwall/gjson"
)

// decodeRenderResponse turns the backend's JSON body into series. The wire
// format is an array of {"target": name, "datapoints": [[value|null, ts], ...]}
// records; null values are kept as absent datapoints, never coerced to 0.
func decodeRenderResponse(body []byte) ([]common.Series, error) {
	if !gjson.ValidBytes(body) {
		return nil, errInvalidResponse("not valid JSON")
	}

	parsed := gjson.ParseBytes(body)
	if !parsed.IsArray() {
		return nil, errInvalidResponse("expected a JSON array")
	}

	items := parsed.Array()
	series := make([]common.Series, 0, len(items))
	for _, item := range items {
		name := item.Get("target")
		if !name.Exists() {
			return nil, errInvalidResponse("series without a target name")
		}

		datapoints, err := decodeDatapoints(item.Get("datapoints"))
		if err != nil {
			return nil, err
		}

		series = append(series, common.Series{
			Name:       name.String(),
			Datapoints: datapoints,
		})
	}

	return series, nil
}

func decodeDatapoints(raw gjson.Result) ([]common.Datapoint, error) {
	if !raw.IsArray() {
		return nil, errInvalidResponse("datapoints is not an array")
	}

	pairs := raw.Array()
	datapoints := make([]common.Datapoint, 0, len(pairs))
	for _, pair := range pairs {
		elements := pair.Array()
		if len(elements) != 2 {
			return nil, errInvalidResponse("datapoint is not a [value, timestamp] pair")
		}

		dp := common.Datapoint{
			Timestamp: elements[1].Int(),
		}
		if elements[0].Type != gjson.Null {
			dp.Value = elements[0].Float()
			dp.Present = true
		}

		datapoints = append(datapoints, dp)
	}

	return datapoints, nil
}
