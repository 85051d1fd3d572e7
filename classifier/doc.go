// SPDX-License-Identifier: MIT

// Package classifier selects one pressure per sample from the five Ridolfi
// (2012) barometers using the decision procedure of Ridolfi (2021).
//
// Inputs are the candidates a–e (equations 1a–1e) in MPa and the analytical
// oxide total of each sample. Rules are tried in order; the first match wins:
//
//	 1  b < 335              → b
//	 2  b < 399              → (b+c)/2
//	 3  c < 415              → c
//	 4  d < 470              → c
//	 5  x > 0.22             → (c+d)/2     x = (a−e)/a
//	 6  δ > 350              → e           δ = d−b
//	 7  δ > 210              → d
//	 8  δ < 75               → c
//	 9  x < −0.2             → (b+c)/2
//	10  x > 0.05             → (c+d)/2
//	11  otherwise            → a
//
// A sample whose total is below 90 gets NaN pressure whatever rule fired; the
// rule and label are still recorded.
//
// Two implementations are provided and agree element for element:
//   - Select evaluates each rule as a mask over the batch and assigns only rows
//     no earlier rule claimed.
//   - SelectScalar walks the samples one at a time.
//
// Complexity: O(11·n) time, O(n) memory for both forms.
package classifier
