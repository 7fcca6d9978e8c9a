// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package task

// OutputRequest registers a project as the output of the hosting task.
type OutputRequest struct {
	TaskID      int64
	ProjectID   int64
	ProjectName string
}
