// SPDX-License-Identifier: MIT

package linalg

import (
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvleq/matrix"
)

// toGonum copies d into a new gonum Dense. The copy keeps gonum from
// aliasing our backing slice.
func toGonum(d *matrix.Dense) *mat.Dense {
	src := d.Data()
	buf := make([]float64, len(src))
	copy(buf, src)

	return mat.NewDense(d.Rows(), d.Cols(), buf)
}

// fromGonum copies a gonum matrix into a fresh *matrix.Dense, honoring stride.
// Results may carry ±Inf/NaN, so the numeric policy is disabled on ingestion.
func fromGonum(m mat.Matrix) (*matrix.Dense, error) {
	r, c := m.Dims()
	data := make([]float64, r*c)
	if rm, ok := m.(mat.RawMatrixer); ok {
		raw := rm.RawMatrix()
		for i := 0; i < r; i++ {
			copy(data[i*c:(i+1)*c], raw.Data[i*raw.Stride:i*raw.Stride+c])
		}
	} else {
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				data[i*c+j] = m.At(i, j)
			}
		}
	}

	return matrix.NewDenseFrom(r, c, data, matrix.WithNoValidateNaNInf())
}
