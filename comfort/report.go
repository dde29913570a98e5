package comfort

import (
	"bufio"
	"fmt"
	"io"
)

/*
Write the text summary of a snapshot.

	Args:
		w: destination
		agg: snapshot aggregate

	Notes:
		The category line is left out when no category matched.
*/
func WriteReport(w io.Writer, agg Aggregate) error {
	b := bufio.NewWriter(w)

	if agg.Radiant.FromHeatFlux {
		fmt.Fprintf(b, "Sum of all heat flows: %.6g °C\n", agg.Radiant.HeatFlowSum)
	}

	fmt.Fprintf(b, "Mean Radiation temperature %.6g °C\n", agg.Radiant.STemp)
	fmt.Fprintf(b, "Water vapour pressure %.6g Pa\n", agg.VapourPressure)
	fmt.Fprintf(b, "Average PMV-Value = %.6g\n", agg.PMV)
	fmt.Fprintf(b, "Average PPD-Value = %.6g %%\n", agg.PPD)
	fmt.Fprintf(b, "Average DR-Value = %.6g %%\n", agg.DR)
	fmt.Fprintf(b, "Average air velocity = %.6g m/s\n", agg.Velocity)
	fmt.Fprintf(b, "Average room temperature = %.6g °C\n", agg.Temperature-kelvin)
	fmt.Fprintf(b, "Average relative room humidity = %.6g %%\n", agg.RH)
	fmt.Fprintf(b, "Average operative temperature = %.6g °C\n", agg.TOp-kelvin)
	fmt.Fprintf(b, "Turbulence = %.6g %%\n", agg.Turbulence)

	if label := agg.Category.Label(); label != "" {
		fmt.Fprintf(b, "Analysis: %s\n", label)
	}

	return b.Flush()
}
