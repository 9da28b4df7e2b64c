// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

// Package module implements the hierarchical module tree: objects with a
// named, typed attribute table whose values are scalars, tensors or nested
// module objects, plus the methods (graph bodies) defined on them. A module
// object can be deep-cloned, queried and pruned by the freezing passes.
package module
