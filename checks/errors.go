package checks

type errNoSeries string

func (e errNoSeries) Error() string {
	return "no series returned for target: " + string(e)
}

type errNoUsableDatapoints string

func (e errNoUsableDatapoints) Error() string {
	return "series holds only null datapoints: " + string(e)
}
