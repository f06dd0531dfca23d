// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package client provides the Kubernetes client used to read standards tables
// from ConfigMaps and publish match results back to them.
//
// Most callers want the shared client:
//
//	cs, _, err := client.Shared()
//
// A specific kubeconfig path bypasses the shared instance:
//
//	cs, _, err := client.ForKubeconfig("/path/to/kubeconfig")
//
// Without an explicit path the kubeconfig is discovered from $KUBECONFIG,
// then ~/.kube/config, and finally the in-cluster service account.
package client
