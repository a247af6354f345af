// SPDX-License-Identifier: MIT
// Package train implements the multi-trial, expanding-window stepwise
// training driver built on top of package lm: each trial optionally samples
// random starting weights (with an optional heuristic output-neuron
// initialization), then grows the training window from a fraction of the
// dataset up to the full dataset, keeping the best-scoring trial across an
// optional held-out validation set.
package train
